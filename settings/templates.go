package settings

import (
	"bytes"
	"os"
	"text/template"

	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/pkg/errors"
)

// ITemplateProvider defines config pre-processing logic.
type ITemplateProvider interface {
	Process([]byte) ([]byte, error)
}

// Renders config files as text templates.
// Available functions:
//
//	env "NAME"            environment variable, empty if not set
//	envOr "NAME" "value"  environment variable or fallback
//	sec "name"            value from secrets store
type templateEngine struct {
	logger    common.ILoggerProvider
	functions template.FuncMap
}

// Contains data required for a new template engine.
type constructTemplate struct {
	Secrets common.ISecretProvider
	Logger  common.ILoggerProvider
}

// Constructs a new template engine.
func newTemplateProvider(ctor *constructTemplate) *templateEngine {
	e := &templateEngine{
		logger: ctor.Logger,
	}

	e.functions = template.FuncMap{
		"env":   e.env,
		"envOr": e.envOr,
	}

	if ctor.Secrets != nil {
		e.functions["sec"] = ctor.Secrets.Get
	}

	return e
}

// Process renders a single config file.
func (e *templateEngine) Process(rawFile []byte) ([]byte, error) {
	tpl, err := template.New("config").Option("missingkey=error").Funcs(e.functions).Parse(string(rawFile))
	if err != nil {
		return nil, errors.Wrap(err, "template parse failed")
	}

	b := bytes.Buffer{}
	if err := tpl.Execute(&b, nil); err != nil {
		return nil, errors.Wrap(err, "template execute failed")
	}

	return b.Bytes(), nil
}

// Returns environment variable.
func (e *templateEngine) env(name string) string {
	e.logger.Debug("Template is requesting environment variable",
		common.LogNameToken, name, common.LogSystemToken, logSystem)
	return os.Getenv(name)
}

// Returns environment variable or fallback if it's not set.
func (e *templateEngine) envOr(name string, fallback string) string {
	v, ok := os.LookupEnv(name)
	if !ok {
		e.logger.Debug("Environment variable is not set, using fallback",
			common.LogNameToken, name, common.LogSystemToken, logSystem)
		return fallback
	}

	return v
}
