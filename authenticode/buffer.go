/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

// sizedBuffer performs the two call size negotiation used by most native
// query functions: query returns the required element count, fill writes
// into a buffer of exactly that many elements and returns how many it used.
// A zero size yields a nil buffer and no error.
func sizedBuffer[T any](query func() (uint32, error), fill func([]T) (uint32, error)) ([]T, error) {
	size, err := query()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	buf := make([]T, size)
	n, err := fill(buf)
	if err != nil {
		return nil, err
	}
	if n < size {
		buf = buf[:n]
	}
	return buf, nil
}
