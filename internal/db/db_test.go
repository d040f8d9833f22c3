package db

import (
	"strings"
	"testing"
)

func TestSchemaDeclaresUniqueKeysUsedByRepos(t *testing.T) {
	s := Schema()
	for _, want := range []string{
		"CONSTRAINT orders_code_key UNIQUE (code)",
		"CONSTRAINT orders_payment_reference_key UNIQUE (payment_reference)",
		"CREATE TABLE IF NOT EXISTS order_items",
		"CREATE TABLE IF NOT EXISTS outbox",
		"CREATE TABLE IF NOT EXISTS products",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("schema is missing %q", want)
		}
	}
}

func TestSchemaIsRerunnable(t *testing.T) {
	for _, stmt := range strings.Split(Schema(), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Fatalf("statement is not idempotent: %s", stmt)
		}
	}
}
