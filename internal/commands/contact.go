package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gYonder/folio-shell/internal/contact"
	"github.com/gYonder/folio-shell/internal/session"
	"github.com/gYonder/folio-shell/internal/ui"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Swapped in tests.
var (
	runForm = ui.RunForm
	isTTY   = func(r io.Reader) bool {
		f, ok := r.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
)

func init() {
	Register(&Command{
		Name:        "contact",
		Description: "Send a message",
		Usage:       "contact [--name NAME] [--email EMAIL] [--message TEXT] [--copy-address]\n\nWithout all three fields on an interactive terminal, a form opens.\nThe message is handed to your mail client, or copied to the clipboard\nwhen no mail client is available.\n\nOptions:\n  -n, --name NAME        Your name\n  -e, --email EMAIL      Your email address\n  -m, --message TEXT     The message (at least 10 characters)\n      --copy-address     Copy the owner's address to the clipboard\n\nExamples:\n  contact\n  contact -n Sam -e sam@example.com -m \"Let's talk about Go.\"",
		Run:         contactCmd,
	})
}

func contactCmd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	fs := newFlagSet("contact")
	name := fs.StringP("name", "n", "", "your name")
	email := fs.StringP("email", "e", "", "your email")
	message := fs.StringP("message", "m", "", "the message")
	copyAddress := fs.Bool("copy-address", false, "copy the owner address")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	s.Page = "contact"
	st := ui.S()
	to := s.Email()

	if *copyAddress {
		if s.Clipboard != nil && s.Clipboard.WriteAll(to) == nil {
			fmt.Fprintf(env.Stdout, "%s Email copied to clipboard.\n", st.Success.Render("✓"))
			return nil
		}
		fmt.Fprintf(env.Stdout, "%s Copy failed. The address is %s\n", st.Warning.Render("!"), st.Accent.Render(to))
		return nil
	}

	form := contact.Form{Name: *name, Email: *email, Message: *message}

	if (form.Name == "" || form.Email == "" || form.Message == "") && isTTY(env.Stdin) {
		res, err := runForm(ui.FormValues{Name: form.Name, Email: form.Email, Message: form.Message}, validateValues)
		if err != nil {
			return fmt.Errorf("contact: form: %w", err)
		}
		if !res.Submitted {
			fmt.Fprintln(env.Stdout, st.Muted.Render("Cancelled."))
			return nil
		}
		form = contact.Form{Name: res.Values.Name, Email: res.Values.Email, Message: res.Values.Message}
	}

	if err := contact.Validate(form); err != nil {
		return fmt.Errorf("contact: %w", err)
	}

	msg := contact.Prepare(to, form)
	status := contact.Deliver(msg, s.Opener, s.Clipboard)
	s.Log.Info("contact message prepared", zap.String("status", string(status)))

	fmt.Fprintln(env.Stdout, st.Success.Render("Message ready!"))
	switch status {
	case contact.EmailOpened:
		fmt.Fprintln(env.Stdout, "Your default email app should now be open with the message ready to send.")
		fmt.Fprintln(env.Stdout, st.Muted.Render("If nothing appeared, send it manually:"))
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, msg.Fallback())
	case contact.Copied:
		fmt.Fprintf(env.Stdout, "The email details have been copied to your clipboard. Paste them into a new message addressed to %s and hit send.\n", st.Accent.Render(to))
	default:
		fmt.Fprintf(env.Stdout, "Copy the message below and send it to %s:\n\n", st.Accent.Render(to))
		fmt.Fprintln(env.Stdout, msg.Fallback())
	}
	return nil
}

// validateValues adapts contact.Validate to the form's error map.
func validateValues(v ui.FormValues) map[string]string {
	return contact.FieldErrors(contact.Validate(contact.Form{Name: v.Name, Email: v.Email, Message: v.Message}))
}
