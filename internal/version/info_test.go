package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetUsesFallbacks(t *testing.T) {
	orig := []string{Version, Commit, BuildDate}
	Version, Commit, BuildDate = "", "", ""
	t.Cleanup(func() {
		Version, Commit, BuildDate = orig[0], orig[1], orig[2]
	})

	info := Get()

	require.Equal(t, "dev", info.Version)
	require.Equal(t, "unknown", info.Commit)
	require.Equal(t, "unknown", info.BuildDate)
	require.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	require.Equal(t, runtime.Version(), info.GoVersion)
}

func TestGetRespectsProvidedValues(t *testing.T) {
	orig := []string{Version, Commit, BuildDate}
	Version, Commit, BuildDate = "1.4.0", "abcd123", "2026-08-30"
	t.Cleanup(func() {
		Version, Commit, BuildDate = orig[0], orig[1], orig[2]
	})

	info := Get()

	require.Equal(t, "1.4.0", info.Version)
	require.Equal(t, "abcd123", info.Commit)
	require.Equal(t, "2026-08-30", info.BuildDate)
}

func TestFallback(t *testing.T) {
	require.Equal(t, "default", fallback("", "default"))
	require.Equal(t, "default", fallback("   ", "default"))
	require.Equal(t, "value", fallback("value", "default"))
}
