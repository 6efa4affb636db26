package jsmodule

import (
	"fmt"
	"strings"
)

// ModulePath derives the generated module path from a template path by
// replacing only the trailing markup extension:
//
//	a/b/x.template.html -> a/b/x.template.js
func ModulePath(templatePath, markupExt, moduleExt string) (string, error) {
	if markupExt == "" || moduleExt == "" {
		return "", fmt.Errorf("markup and module extensions must be set")
	}
	if markupExt == moduleExt {
		return "", fmt.Errorf("markup and module extension are both %q", markupExt)
	}
	if !strings.HasSuffix(templatePath, markupExt) || len(templatePath) == len(markupExt) {
		return "", fmt.Errorf("%s does not end in %s", templatePath, markupExt)
	}
	return strings.TrimSuffix(templatePath, markupExt) + moduleExt, nil
}
