package environ

import (
	"fmt"
	"sort"

	"github.com/joho/godotenv"
)

// LoadEnvFiles reads dotenv files in order and sets their variables on s.
// Within a file, variables are applied in name order; later files override
// earlier ones.
func (s *Snapshot) LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		vars, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("failed to read env file %q: %w", path, err)
		}
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			s.Set(name, vars[name])
		}
	}
	return nil
}
