package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"
)

const (
	SimulationKind = "simulation"
	ProductKind    = "product"

	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	pluralKinds = map[string]string{
		SimulationKind: "simulations",
		ProductKind:    "products",
	}

	legalOutputTypes = []string{jsonFormat, yamlFormat}
)

func parseAndValidateKindId(arg string) (string, string, error) {
	kind, id, _ := strings.Cut(arg, "/")
	kind = singular(kind)
	if _, ok := pluralKinds[kind]; !ok {
		return "", "", fmt.Errorf("invalid resource kind: %s", kind)
	}
	return kind, id, nil
}

func singular(kind string) string {
	for singular, plural := range pluralKinds {
		if kind == plural {
			return singular
		}
	}
	return kind
}

func plural(kind string) string {
	return pluralKinds[kind]
}

func validateOutput(output string) error {
	if len(output) > 0 && !funk.ContainsString(legalOutputTypes, output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

// printStructured writes v as json or yaml. ok is false for any other output so the caller
// can print a table instead.
func printStructured(w io.Writer, output string, v any) (ok bool, err error) {
	var marshalled []byte
	switch output {
	case jsonFormat:
		marshalled, err = json.Marshal(v)
	case yamlFormat:
		marshalled, err = yaml.Marshal(v)
	default:
		return false, nil
	}
	if err != nil {
		return true, fmt.Errorf("marshalling resource: %w", err)
	}
	fmt.Fprintf(w, "%s\n", string(marshalled))
	return true, nil
}
