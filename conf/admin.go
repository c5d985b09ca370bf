/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package conf

var adminBool = AdminBool

// applyAdminPolicy lets machine administrators pin settings that neither a
// user's configuration file nor command line flags can relax.
func (conf *Config) applyAdminPolicy() {
	if adminBool("ForceNativeEngine") {
		conf.Engine = "native"
	}
	if adminBool("ForceRevocationChecks") {
		conf.RevocationChecks = true
	}
}

// SetEngine overrides the configured engine, subject to machine policy.
func (conf *Config) SetEngine(engine string) error {
	conf.Engine = engine
	if err := conf.Validate(); err != nil {
		return err
	}
	conf.applyAdminPolicy()
	return nil
}
