// Package io reads and writes measurement profiles.
//
// # Overview
//
// A profile bundles everything needed to reproduce a draft: the body
// measurements, the figure options, the dart split and optional render
// defaults. Profiles are TOML or JSON files; the format follows the file
// extension.
//
// # TOML Format
//
//	name = "client-042"
//
//	[measurements]
//	bust = 96
//	waist = 78
//	hip = 100
//	back_length = 41
//
//	[figure]
//	shoulder = "square"
//	bust = "full"
//
//	[draft]
//	split = "contour"
//
//	[render]
//	style = "print"
//	paper = "a3"
//	formats = ["svg", "pdf"]
//
// Missing measurements fall back to [measure.Defaults], missing figure axes
// to their neutral value. Unknown keys are rejected so that typos do not pass
// silently.
//
// # Import
//
// Use [ImportProfile] to read a file, or [ReadProfile] to read from any
// io.Reader:
//
//	p, err := io.ImportProfile("client.toml")
//
// Both validate the result: out-of-range measurements fail with
// INVALID_MEASUREMENT, unknown option values with INVALID_OPTION and
// malformed files with INVALID_PROFILE.
//
// # Export
//
// [ExportProfile] and [WriteProfile] write a profile back out with every
// measurement present, so an exported file documents the values actually
// drafted with.
//
// [measure.Defaults]: github.com/matzehuels/dressform/pkg/measure.Defaults
package io
