// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
	"github.com/sirupsen/logrus"
)

// InitCatalog builds the rule catalog.
//
// ============================================================
// DEVELOPER: Adding achievements
// ============================================================
// With CATALOG_PATH unset the built-in table in pkg/rule/builtin.go
// is used. To ship a different set of achievements, point
// CATALOG_PATH at a YAML file:
//
// rules:
//   - id: night_owl
//     name: Night Owl
//     icon: "🦉"
//     threshold: 25
//     period: monthly
//     theme: {background: bg-indigo-50, text: text-indigo-500, ...}
//
// Catalog order matters: it is the order unlocks are reported in
// and the tie-break when two rules share a threshold.
// ============================================================
func InitCatalog(path string) (*rule.Catalog, error) {
	if path == "" {
		catalog := rule.DefaultCatalog()
		logrus.Infof("using built-in catalog with %d rules", catalog.Len())
		return catalog, nil
	}

	catalog, err := rule.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", path, err)
	}

	logrus.Infof("loaded %d rules from %s", catalog.Len(), path)
	return catalog, nil
}
