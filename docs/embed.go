// Copyright © 2025 The declnav authors

// Package docs embeds the fixture format reference for use by the CLI.
package docs

import _ "embed"

//go:embed fixture-format.md
var FixtureFormat string
