// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the shapehash
// tool.
//
// Configuration is loaded from a single file specified by either the
// SHAPEHASH_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). [Resolve] picks between them and falls back to
// [Default] only when neither is given. There is no ~/.config
// discovery and no automatic file search.
//
// The configuration file supports environment-specific sections
// (development, ci) that override base values when [Config].Environment
// matches. The ci defaults are stricter: checks fail on unpinned or
// missing types and logs are JSON.
//
// Generators build manifests with [Config.ManifestOptions], so that the
// hash section governs both the manifests a project writes and the
// expectations the shapehash tool checks them against.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${SHAPEHASH_ROOT}, and ${VAR:-default} patterns are
// expanded. No other environment variables override config values.
package config
