// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package lint

import (
	"encoding/json"

	"github.com/kraklabs/graphqlcore/pkg/diag"
)

// RuleSeverity is a config-level override for one rule.
type RuleSeverity string

const (
	SeverityOff   RuleSeverity = "off"
	SeverityWarn  RuleSeverity = "warn"
	SeverityError RuleSeverity = "error"
)

// RuleConfig is one rule's entry in a LintConfig: a severity override
// plus opaque, rule-specific JSON options. Options is left as
// json.RawMessage rather than a concrete struct because the framework
// itself never interprets it — each rule unmarshals its own shape.
type RuleConfig struct {
	Severity RuleSeverity
	Options  json.RawMessage
}

// LintConfig maps rule name to its configuration. A rule absent from
// the map runs at its own DefaultSeverity with no options.
type LintConfig struct {
	Rules map[string]RuleConfig
}

// resolve returns the effective severity for ruleName given its
// default, and whether the rule should run at all. A rule configured
// "off" is skipped entirely, never invoked — not merely filtered out
// afterward, so a disabled expensive ProjectRule costs nothing.
func (c LintConfig) resolve(ruleName string, def diag.Severity) (diag.Severity, bool) {
	rc, ok := c.Rules[ruleName]
	if !ok {
		return def, true
	}
	switch rc.Severity {
	case SeverityOff:
		return def, false
	case SeverityError:
		return diag.Error, true
	case SeverityWarn:
		return diag.Warning, true
	default:
		return def, true
	}
}

// options returns the raw JSON options configured for ruleName, or nil
// if none were supplied.
func (c LintConfig) options(ruleName string) json.RawMessage {
	return c.Rules[ruleName].Options
}
