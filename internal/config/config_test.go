package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	_ = os.Unsetenv("CODESCOPE_PORT")
	_ = os.Unsetenv("CODESCOPE_NEO4J_URI")
	_ = os.Unsetenv("CODESCOPE_REPOS_PATH")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != "3001" {
		t.Errorf("Expected default port 3001, got %q", cfg.Port)
	}
	if cfg.Neo4j.URI != "bolt://localhost:7687" {
		t.Errorf("Expected default Neo4j URI, got %q", cfg.Neo4j.URI)
	}
	if cfg.Neo4j.User != "neo4j" {
		t.Errorf("Expected default Neo4j user, got %q", cfg.Neo4j.User)
	}
	if cfg.ReposPath != "./repos" {
		t.Errorf("Expected default repos path, got %q", cfg.ReposPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CODESCOPE_PORT", "8080")
	t.Setenv("CODESCOPE_NEO4J_URI", "bolt://db:7687")
	t.Setenv("CODESCOPE_NEO4J_PASSWORD", "hunter2")
	t.Setenv("CODESCOPE_REPOS_PATH", "/data/repos")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %q", cfg.Port)
	}
	if cfg.Neo4j.URI != "bolt://db:7687" {
		t.Errorf("Expected overridden Neo4j URI, got %q", cfg.Neo4j.URI)
	}
	if cfg.Neo4j.Password != "hunter2" {
		t.Errorf("Expected overridden Neo4j password, got %q", cfg.Neo4j.Password)
	}
	if cfg.ReposPath != "/data/repos" {
		t.Errorf("Expected overridden repos path, got %q", cfg.ReposPath)
	}
}
