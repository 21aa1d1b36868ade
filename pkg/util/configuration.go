package util

import (
	"io/ioutil"
	"os"
	"strings"

	"github.com/google/go-jsonnet"
	jsoniter "github.com/json-iterator/go"

	"google.golang.org/grpc/codes"
)

var strictJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
}.Froze()

// UnmarshalConfigurationFromFile reads a Jsonnet file, evaluates it
// and unmarshals the resulting JSON into a configuration structure.
// All environment variables are made available as external variables,
// so that they can be accessed using std.extVar(). Fields that are not
// part of the configuration structure are rejected.
func UnmarshalConfigurationFromFile(path string, configuration interface{}) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return StatusWrapfWithCode(err, codes.InvalidArgument, "Failed to read file %#v", path)
	}
	return UnmarshalConfigurationFromSnippet(path, string(data), configuration)
}

// UnmarshalConfigurationFromSnippet is identical to
// UnmarshalConfigurationFromFile, except that the Jsonnet source is
// provided directly. The filename is only used in error messages and
// to resolve relative imports.
func UnmarshalConfigurationFromSnippet(filename, snippet string, configuration interface{}) error {
	vm := jsonnet.MakeVM()
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		vm.ExtVar(parts[0], parts[1])
	}
	jsonData, err := vm.EvaluateSnippet(filename, snippet)
	if err != nil {
		return StatusWrapfWithCode(err, codes.InvalidArgument, "Failed to evaluate configuration %#v", filename)
	}
	if err := strictJSON.UnmarshalFromString(jsonData, configuration); err != nil {
		return StatusWrapfWithCode(err, codes.InvalidArgument, "Failed to unmarshal configuration %#v", filename)
	}
	return nil
}
