package probe

import (
	"fmt"
	"io"
)

const previewLen = 500

// console prints the human-facing status lines. Write errors are ignored;
// a closed stdout must not stop the remaining checks.
type console struct {
	w        io.Writer
	sections int
}

func newConsole(w io.Writer) *console {
	if w == nil {
		w = io.Discard
	}
	return &console{w: w}
}

func (c *console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.w, format+"\n", args...)
}

func (c *console) section(heading string) {
	if c.sections > 0 {
		_, _ = fmt.Fprintln(c.w)
	}
	c.sections++
	c.printf("%s", heading)
}

func (c *console) checking(url string) { c.printf("📡 Checking: %s", url) }
func (c *console) title(title string) { c.printf("📄 Page title: %s", title) }
func (c *console) live(name string) { c.printf("✅ %s is live!", name) }
func (c *console) openFailed(err error) { c.printf("❌ Could not start browser: %v", err) }
func (c *console) failed(name string, err error) {
	c.printf("❌ %s check failed: %v", name, err)
}

func (c *console) stillBuilding(name string, err error) {
	c.printf("🔄 %s may still be building... (%v)", name, err)
}

func (c *console) contentMissing(name, content string) {
	c.printf("❌ %s: expected content not found", name)
	c.printf("📄 Page content preview: %s", preview(content, previewLen))
}
