package indexer

import (
	"testing"

	"github.com/codescope/codescope/internal/models"
)

func TestScanDependenciesImports(t *testing.T) {
	content := `import { helper } from './utils'
import * as fs from 'fs'
import defaults from '../config/defaults'
import './side-effect'
`
	deps := ScanDependencies("repo-1", "src/app.ts", content, "typescript")

	if len(deps) != 3 {
		t.Fatalf("expected 3 dependencies, got %d: %+v", len(deps), deps)
	}

	expected := []string{"src/utils", "config/defaults", "src/side-effect"}
	for i, want := range expected {
		if deps[i].ToFile != want {
			t.Errorf("dep %d: expected target %q, got %q", i, want, deps[i].ToFile)
		}
		if deps[i].FromFile != "src/app.ts" {
			t.Errorf("dep %d: expected source src/app.ts, got %q", i, deps[i].FromFile)
		}
		if deps[i].DependencyType != models.DepImport {
			t.Errorf("dep %d: expected type import, got %q", i, deps[i].DependencyType)
		}
	}
}

func TestScanDependenciesRequire(t *testing.T) {
	content := `const utils = require('./utils');
const express = require('express');
`
	deps := ScanDependencies("repo-1", "lib/server.js", content, "javascript")

	if len(deps) != 1 {
		t.Fatalf("expected 1 dependency, got %d", len(deps))
	}
	if deps[0].ToFile != "lib/utils" {
		t.Errorf("expected target lib/utils, got %q", deps[0].ToFile)
	}
	if deps[0].DependencyType != models.DepRequire {
		t.Errorf("expected type require, got %q", deps[0].DependencyType)
	}
}

func TestScanDependenciesSkipsBareModules(t *testing.T) {
	content := `import express from 'express'
import { v4 } from 'uuid'
`
	deps := ScanDependencies("repo-1", "src/app.ts", content, "typescript")
	if len(deps) != 0 {
		t.Errorf("expected no dependencies for bare module imports, got %d", len(deps))
	}
}

func TestScanDependenciesUnsupportedLanguage(t *testing.T) {
	content := `import os` // python-style, close enough to trip a naive scanner
	if deps := ScanDependencies("repo-1", "main.py", content, "python"); deps != nil {
		t.Errorf("expected nil for python file, got %+v", deps)
	}
	if deps := ScanDependencies("repo-1", "main.go", content, "go"); deps != nil {
		t.Errorf("expected nil for go file, got %+v", deps)
	}
}

func TestScanDependenciesParentTraversal(t *testing.T) {
	deps := ScanDependencies("repo-1", "src/deep/nested/mod.ts",
		`import x from '../../shared'`, "typescript")

	if len(deps) != 1 {
		t.Fatalf("expected 1 dependency, got %d", len(deps))
	}
	if deps[0].ToFile != "src/shared" {
		t.Errorf("expected target src/shared, got %q", deps[0].ToFile)
	}
}
