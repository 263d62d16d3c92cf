package config

import (
	"strings"
	"testing"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AI_PROVIDER", "together")
	t.Setenv("TOGETHER_API_KEY", "key")
	t.Setenv("SERVICE_ACCOUNT_JSON", `{"type":"service_account"}`)
	t.Setenv("PRODUCT_SHEET_ID", "products")
	t.Setenv("ORDER_SHEET_ID", "orders")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":10000" {
		t.Errorf("HTTPAddr = %q, want :10000", cfg.HTTPAddr)
	}
	if cfg.AIProvider != "together" {
		t.Errorf("AIProvider = %q", cfg.AIProvider)
	}
}

func TestLoadRequiresProviderKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TOGETHER_API_KEY", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "TOGETHER_API_KEY") {
		t.Errorf("err = %v, want TOGETHER_API_KEY complaint", err)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AI_PROVIDER", "chatgpt")

	if _, err := Load(); err == nil {
		t.Error("unknown provider accepted")
	}
}

func TestLoadGeminiProvider(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "gkey")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AIProvider != "gemini" {
		t.Errorf("AIProvider = %q", cfg.AIProvider)
	}
}

func TestLoadXLSXCatalogSkipsSheetsRequirement(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SERVICE_ACCOUNT_JSON", "")
	t.Setenv("PRODUCT_SHEET_ID", "")
	t.Setenv("ORDER_SHEET_ID", "")
	t.Setenv("PRODUCT_XLSX", "catalog.xlsx")
	t.Setenv("DATABASE_URL", "postgres://localhost/orders")

	if _, err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadRequiresOrderSink(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ORDER_SHEET_ID", "")
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("missing order sink accepted")
	}
}
