// SPDX-License-Identifier: MIT

// Package params is the named parameter store of a detection session.
//
// Keys are solver-style slash paths ("detection/maxrounds"); values are
// typed through the usual getters. Every knob ships with a default, so a
// zero-configuration session behaves sensibly, and a YAML file can
// override any subset (detection: {maxrounds: 3} addresses
// "detection/maxrounds").
package params
