package site

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(yamlFieldName)
	})
	return validate
}

// Validate checks the configuration is structurally well formed. It does not
// resolve links against content; that is the link verifier's job.
func (c *SiteConfig) Validate() error {
	if c == nil {
		return foundation.ConfigError("site configuration is nil").Build()
	}
	if err := structValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			msg := fmt.Sprintf("invalid site configuration: %s", strings.Join(fields, ", "))
			return foundation.ValidationError(msg).
				WithContext("fields", fields).
				Build()
		}
		return foundation.WrapError(err, foundation.CategoryValidation, "invalid site configuration").Fatal().Build()
	}
	if lv := c.ThemeConfig.Outline.Levels; lv[0] > lv[1] {
		return foundation.ValidationError("outline levels must be ascending").
			WithContext("levels", lv).
			Build()
	}
	if err := c.Head.Validate(); err != nil {
		return err
	}
	if _, _, ok := c.ThemeConfig.Sidebar.Resolve("/"); !ok {
		return foundation.ValidationError("sidebar has no root entry").
			WithContext("prefixes", c.ThemeConfig.Sidebar.Prefixes()).
			Build()
	}
	return nil
}

// yamlFieldName reports fields by their configuration key rather than the Go name.
func yamlFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
