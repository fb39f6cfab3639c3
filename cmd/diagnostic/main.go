package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Victor-armando18/vinyl-store/internal/domain/form"
	"github.com/Victor-armando18/vinyl-store/internal/domain/form/forms"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure/yaml"
	"github.com/Victor-armando18/vinyl-store/internal/usecase"
	"github.com/goccy/go-json"
)

func main() {
	rulesDir := flag.String("rules", "rules", "directory holding <version>_forms.{yaml,json}")
	version := flag.String("version", "", "rule pack version; built-in rules only when empty")
	formName := flag.String("form", forms.Product, "form to validate")
	valuesPath := flag.String("values", "", "JSON or YAML file with the field values")
	flag.Parse()

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("   FORM RULES - DIAGNOSTIC TOOL")
	fmt.Println(strings.Repeat("=", 60))

	ruleSets := forms.Builtin()
	if *version != "" {
		loader := infrastructure.NewFileRuleLoader(*rulesDir)
		sets, err := usecase.LoadRuleSets(context.Background(), loader, infrastructure.NewJsonLogicExecutor(), *version)
		if err != nil {
			fmt.Printf("\nERROR: %v\n", err)
			os.Exit(2)
		}
		ruleSets = sets
	}

	rules, ok := ruleSets[*formName]
	if !ok {
		fmt.Printf("\nERROR: unknown form %q\n", *formName)
		os.Exit(2)
	}

	values := form.Values{}
	if *valuesPath != "" {
		v, err := loadValues(*valuesPath)
		if err != nil {
			fmt.Printf("\nERROR: %v\n", err)
			os.Exit(2)
		}
		values = v
	}

	errs := form.ValidateAll(values, rules)
	valid := form.IsValid(values, errs, rules)
	displaySummary(*formName, rules, values, errs, valid)
	if !valid {
		os.Exit(1)
	}
}

func loadValues(path string) (form.Values, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		values := form.Values{}
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return values, nil
	}
	return yaml.LoadValues(path)
}

func displaySummary(name string, rules form.RuleSet, values form.Values, errs form.Errors, valid bool) {
	fmt.Printf("\n[1. FIELDS - %s]\n", name)
	for _, field := range rules.Fields() {
		status := "OK"
		if msg, failed := errs[field]; failed {
			status = msg
		}
		fmt.Printf("   %-16s %-24q -> %s\n", field, form.Text(values[field]), status)
	}

	fmt.Println("\n[2. SUMMARY]")
	fmt.Printf("   Status:  %s\n", map[bool]string{true: "VALID", false: "INVALID"}[valid])
	fmt.Printf("   Errors:  %d\n", len(errs))
	fmt.Println(strings.Repeat("=", 60))
}
