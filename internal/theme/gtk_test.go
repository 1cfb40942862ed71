package theme

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseGTKSettings(t *testing.T) {
	tests := []struct {
		name string
		ini  string
		want bool
	}{
		{name: "dark 1", ini: "[Settings]\ngtk-application-prefer-dark-theme=1\n", want: true},
		{name: "dark true spaced", ini: "[Settings]\ngtk-application-prefer-dark-theme = true\n", want: true},
		{name: "dark yes", ini: "[Settings]\ngtk-application-prefer-dark-theme=yes\n", want: true},
		{name: "light 0", ini: "[Settings]\ngtk-application-prefer-dark-theme=0\n", want: false},
		{name: "missing key", ini: "[Settings]\ngtk-theme-name=Adwaita\n", want: false},
		{name: "other section ignored", ini: "[Other]\ngtk-application-prefer-dark-theme=1\n", want: false},
		{name: "comment ignored", ini: "[Settings]\n# gtk-application-prefer-dark-theme=1\n", want: false},
		{name: "no section", ini: "gtk-application-prefer-dark-theme=1\n", want: true},
		{name: "empty", ini: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseGTKSettings([]byte(tt.ini)))
		})
	}
}

func TestNewGTKSignal_MissingFile(t *testing.T) {
	_, err := NewGTKSignal(filepath.Join(t.TempDir(), "settings.ini"), nil)
	assert.Error(t, err)
}

func TestGTKSignal_NotifiesOnRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Settings]\ngtk-application-prefer-dark-theme=0\n"), 0o644))

	sig, err := NewGTKSignal(path, nil)
	require.NoError(t, err)
	assert.False(t, sig.PrefersDark())

	events := make(chan bool, 4)
	unsubscribe := sig.Subscribe(func(dark bool) { events <- dark })

	require.NoError(t, os.WriteFile(path, []byte("[Settings]\ngtk-application-prefer-dark-theme=1\n"), 0o644))

	select {
	case dark := <-events:
		assert.True(t, dark)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
	assert.True(t, sig.PrefersDark())

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, sig.b.count())
	assert.Nil(t, sig.watcher)
}

func TestGTKSignal_ReplaceViaRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Settings]\ngtk-application-prefer-dark-theme=1\n"), 0o644))

	sig, err := NewGTKSignal(path, nil)
	require.NoError(t, err)
	require.True(t, sig.PrefersDark())

	events := make(chan bool, 4)
	unsubscribe := sig.Subscribe(func(dark bool) { events <- dark })
	defer unsubscribe()

	tmp := filepath.Join(dir, "settings.ini.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("[Settings]\ngtk-application-prefer-dark-theme=0\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case dark := <-events:
		assert.False(t, dark)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}
