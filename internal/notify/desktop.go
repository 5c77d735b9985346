package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnsupportedPlatform is returned when no popup mechanism is known for the
// current operating system.
var ErrUnsupportedPlatform = errors.New("desktop notifications not supported on this platform")

// StartFunc launches a command without waiting for it to finish.
type StartFunc func(name string, args ...string) error

// DesktopNotifier implements Notifier with an OS-level popup: notify-send on
// Linux and the BSDs, osascript on macOS and a PowerShell toast on Windows.
type DesktopNotifier struct {
	title string
	goos  string
	start StartFunc
}

// DesktopOption configures a DesktopNotifier.
type DesktopOption func(*DesktopNotifier)

// WithTitle sets the popup title.
func WithTitle(title string) DesktopOption {
	return func(d *DesktopNotifier) {
		d.title = title
	}
}

// WithPlatform overrides the detected GOOS.
func WithPlatform(goos string) DesktopOption {
	return func(d *DesktopNotifier) {
		d.goos = goos
	}
}

// WithStartFunc replaces the process launcher.
func WithStartFunc(fn StartFunc) DesktopOption {
	return func(d *DesktopNotifier) {
		d.start = fn
	}
}

// NewDesktopNotifier creates a DesktopNotifier for the running platform.
func NewDesktopNotifier(opts ...DesktopOption) *DesktopNotifier {
	d := &DesktopNotifier{
		title: "DHL tracker",
		goos:  runtime.GOOS,
		start: startDetached,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Notify launches the popup and returns without waiting for it to be
// dismissed. Only a failure to launch is reported.
func (d *DesktopNotifier) Notify(_ context.Context, u Update) error {
	name, args, err := popupCommand(d.goos, d.title, u.Message())
	if err != nil {
		return err
	}
	if err := d.start(name, args...); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	return nil
}

func popupCommand(goos, title, message string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "notify-send", []string{title, message}, nil
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`,
			escapeAppleScript(message), escapeAppleScript(title))
		return "osascript", []string{"-e", script}, nil
	case "windows":
		return "powershell", []string{
			"-NoProfile", "-NonInteractive", "-Command",
			toastScript(title, message),
		}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

func escapeAppleScript(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// toastScript builds a ToastText02 notification. Text is XML-escaped, then
// PowerShell-escaped for the expandable here-string.
func toastScript(title, message string) string {
	ps := strings.NewReplacer("`", "``", "$", "`$")
	t := ps.Replace(html.EscapeString(title))
	m := ps.Replace(html.EscapeString(message))

	return fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$xml = @"
<toast>
	<visual>
		<binding template="ToastText02">
			<text id="1">%s</text>
			<text id="2">%s</text>
		</binding>
	</visual>
</toast>
"@
$doc = [Windows.Data.Xml.Dom.XmlDocument]::new()
$doc.LoadXml($xml)
$toast = [Windows.UI.Notifications.ToastNotification]::new($doc)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier("%s").Show($toast)
`, t, m, t)
}

// startDetached starts the command and reaps it in the background.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...) //nolint:gosec // fixed binaries, args are data
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
