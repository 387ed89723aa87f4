package admin

import (
	"testing"

	"github.com/stretchr/testify/require"
	"thirdcoast.systems/adminkit/cmd/web/templates"
	"thirdcoast.systems/adminkit/pkg/ui/fielderr"
)

func TestValidateGoMod(t *testing.T) {
	t.Parallel()
	v := fielderr.NewValidator()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		s, errs, err := validateGoMod(v, gomodForm{GoBinary: "/usr/bin/go", GoPath: "/srv/go", UploadLimit: "64 MiB"})
		require.NoError(t, err)
		require.Empty(t, errs)
		require.Equal(t, uint64(64<<20), s.UploadLimit)
	})

	t.Run("empty limit is unlimited", func(t *testing.T) {
		t.Parallel()
		s, errs, err := validateGoMod(v, gomodForm{GoBinary: "/usr/bin/go", GoPath: "/srv/go"})
		require.NoError(t, err)
		require.Empty(t, errs)
		require.Zero(t, s.UploadLimit)
	})

	t.Run("field errors use element ids", func(t *testing.T) {
		t.Parallel()
		_, errs, err := validateGoMod(v, gomodForm{GoBinary: "", GoPath: "relative", UploadLimit: "lots"})
		require.NoError(t, err)

		byName := map[string]string{}
		for _, fe := range errs {
			byName[fe.Name] = fe.Message
		}
		require.Equal(t, "This field is required", byName[templates.GoModFieldBinary])
		require.Equal(t, `Must start with "/"`, byName[templates.GoModFieldPath])
		require.Contains(t, byName[templates.GoModFieldLimit], "Use a size like")
	})
}

func TestGoModFormTrimmed(t *testing.T) {
	t.Parallel()
	f := gomodForm{GoBinary: " /usr/bin/go ", GoPath: "\t/srv/go\n", UploadLimit: " 1G "}.trimmed()
	require.Equal(t, gomodForm{GoBinary: "/usr/bin/go", GoPath: "/srv/go", UploadLimit: "1G"}, f)
}
