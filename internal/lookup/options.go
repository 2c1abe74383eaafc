package lookup

import (
	"fmt"
	"os"

	"github.com/SirSluginston/SirSluginston-Backend/internal/normalize"
)

// OptionsFromEnv reads PROJECT_CONFIG_POLICY (full listing) and
// PROJECT_LISTING_POLICY (project-scoped listing). Both default to "page".
func OptionsFromEnv() (Options, error) {
	all, err := normalize.ParsePolicy(os.Getenv("PROJECT_CONFIG_POLICY"))
	if err != nil {
		return Options{}, fmt.Errorf("PROJECT_CONFIG_POLICY: %w", err)
	}
	project, err := normalize.ParsePolicy(os.Getenv("PROJECT_LISTING_POLICY"))
	if err != nil {
		return Options{}, fmt.Errorf("PROJECT_LISTING_POLICY: %w", err)
	}
	return Options{AllPolicy: all, ProjectPolicy: project}, nil
}
