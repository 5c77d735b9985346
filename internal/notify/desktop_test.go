package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type startRecorder struct {
	name string
	args []string
	err  error
}

func (r *startRecorder) start(name string, args ...string) error {
	r.name = name
	r.args = args
	return r.err
}

func TestDesktopNotifier_Notify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		goos     string
		wantName string
		check    func(t *testing.T, args []string)
	}{
		{
			name:     "linux uses notify-send",
			goos:     "linux",
			wantName: "notify-send",
			check: func(t *testing.T, args []string) {
				t.Helper()
				require.Len(t, args, 2)
				assert.Equal(t, "Parcel", args[0])
				assert.Contains(t, args[1], "Out for delivery")
			},
		},
		{
			name:     "freebsd uses notify-send",
			goos:     "freebsd",
			wantName: "notify-send",
		},
		{
			name:     "darwin uses osascript",
			goos:     "darwin",
			wantName: "osascript",
			check: func(t *testing.T, args []string) {
				t.Helper()
				require.Len(t, args, 2)
				assert.Equal(t, "-e", args[0])
				assert.Contains(t, args[1], `display notification "====> DHL update available!`)
				assert.Contains(t, args[1], `with title "Parcel"`)
			},
		},
		{
			name:     "windows uses powershell toast",
			goos:     "windows",
			wantName: "powershell",
			check: func(t *testing.T, args []string) {
				t.Helper()
				require.Len(t, args, 4)
				assert.Equal(t, "-Command", args[2])
				assert.Contains(t, args[3], "ToastText02")
				assert.Contains(t, args[3], "====&gt; New status: Out for delivery")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &startRecorder{}
			d := NewDesktopNotifier(
				WithTitle("Parcel"),
				WithPlatform(tt.goos),
				WithStartFunc(rec.start),
			)

			require.NoError(t, d.Notify(context.Background(), testUpdate()))
			assert.Equal(t, tt.wantName, rec.name)
			if tt.check != nil {
				tt.check(t, rec.args)
			}
		})
	}
}

func TestDesktopNotifier_UnsupportedPlatform(t *testing.T) {
	t.Parallel()

	rec := &startRecorder{}
	d := NewDesktopNotifier(WithPlatform("plan9"), WithStartFunc(rec.start))

	err := d.Notify(context.Background(), testUpdate())
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.Empty(t, rec.name, "nothing should be launched")
}

func TestDesktopNotifier_StartFailure(t *testing.T) {
	t.Parallel()

	rec := &startRecorder{err: errors.New("executable file not found in $PATH")}
	d := NewDesktopNotifier(WithPlatform("linux"), WithStartFunc(rec.start))

	err := d.Notify(context.Background(), testUpdate())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting notify-send")
}

func TestEscapeAppleScript(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `say \"hi\" \\ bye`, escapeAppleScript(`say "hi" \ bye`))
}

func TestToastScript_EscapesPowerShell(t *testing.T) {
	t.Parallel()

	script := toastScript("DHL", "cost $5 `now` <b>")
	assert.Contains(t, script, "cost `$5 ``now`` &lt;b&gt;")
}

// compile-time interface check.
var _ Notifier = (*DesktopNotifier)(nil)
