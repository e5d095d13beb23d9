package harness

import (
	"encoding/json"
	"fmt"

	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// TestFile is the top-level shape of a JSON test configuration file: a
// required tests array plus optional run-wide options.
type TestFile struct {
	Options Options        `json:"options"`
	Tests   []TestSettings `json:"tests"`
}

// Options are the run-wide knobs a test file may override; zero values fall
// back to the Harness's own Config.
type Options struct {
	MaxProcesses    int  `json:"max_processes"`
	IncludeRawStats bool `json:"include_raw_stats"`
	ExportArtifacts bool `json:"export_artefacts"`
}

// knownTestFileKeys and knownTestSettingsKeys back the "unknown keys are an
// error" rule from the JSON test configuration contract: encoding/json
// silently ignores unknown fields, so unknown-key detection is done
// separately over a generic map before decoding into the typed structs.
var knownTestFileKeys = map[string]bool{"options": true, "tests": true}

var knownOptionsKeys = map[string]bool{
	"max_processes": true, "include_raw_stats": true, "export_artefacts": true,
}

var knownTestSettingsKeys = map[string]bool{
	"name": true, "algorithm_name": true, "seed": true, "floors": true,
	"num_elevators": true, "num_passengers": true, "max_load": true,
	"iterations": true, "prepopulated_loads": true,
}

// LoadTestFile decodes and validates a JSON test configuration document.
func LoadTestFile(data []byte) (TestFile, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return TestFile{}, domain.NewInvalidConfigError("test file is not a JSON object", err)
	}
	if err := checkUnknownKeys(raw, knownTestFileKeys, "test file"); err != nil {
		return TestFile{}, err
	}

	var file TestFile
	if opts, ok := raw["options"]; ok {
		var optsRaw map[string]json.RawMessage
		if err := json.Unmarshal(opts, &optsRaw); err != nil {
			return TestFile{}, domain.NewInvalidConfigError("options is not a JSON object", err)
		}
		if err := checkUnknownKeys(optsRaw, knownOptionsKeys, "options"); err != nil {
			return TestFile{}, err
		}
		if err := json.Unmarshal(opts, &file.Options); err != nil {
			return TestFile{}, domain.NewInvalidConfigError("failed to decode options", err)
		}
	}

	testsRaw, ok := raw["tests"]
	if !ok {
		return TestFile{}, domain.NewInvalidConfigError("test file missing required field: tests", nil)
	}
	var rawTests []map[string]json.RawMessage
	if err := json.Unmarshal(testsRaw, &rawTests); err != nil {
		return TestFile{}, domain.NewInvalidConfigError("tests is not a JSON array", err)
	}
	for i, rt := range rawTests {
		if err := checkUnknownKeys(rt, knownTestSettingsKeys, fmt.Sprintf("tests[%d]", i)); err != nil {
			return TestFile{}, err
		}
	}

	if err := json.Unmarshal(testsRaw, &file.Tests); err != nil {
		return TestFile{}, domain.NewInvalidConfigError("failed to decode tests", err)
	}
	for _, ts := range file.Tests {
		if err := ts.Validate(); err != nil {
			return TestFile{}, err
		}
	}
	return file, nil
}

func checkUnknownKeys(raw map[string]json.RawMessage, known map[string]bool, context string) error {
	for key := range raw {
		if !known[key] {
			return domain.NewInvalidConfigError(
				fmt.Sprintf("%s: unknown key %q", context, key), nil)
		}
	}
	return nil
}
