package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"staffkeeper/internal/guard"
	"staffkeeper/internal/imagex"
	"staffkeeper/internal/models"
	"staffkeeper/internal/notify"
)

// List renders the users view with the current query. Every entry
// point into the view goes through the guard, so a trainee typing
// "list" lands on the unauthorized view, not on data.
func (a *App) List(ctx context.Context) error {
	if !a.gotoView(guard.ViewUsers) {
		return nil
	}
	return a.renderUsers(ctx)
}

// Search narrows the list to records matching term and rewinds to the
// first page. An empty term clears the filter.
func (a *App) Search(ctx context.Context, term string) error {
	if !a.gotoView(guard.ViewUsers) {
		return nil
	}
	a.query.Search = strings.TrimSpace(term)
	a.query.Page = 1
	return a.renderUsers(ctx)
}

// FilterRole narrows the list to one role; "all" clears the filter.
func (a *App) FilterRole(ctx context.Context, arg string) error {
	if !a.gotoView(guard.ViewUsers) {
		return nil
	}

	if strings.EqualFold(arg, "all") {
		a.query.Role = ""
	} else {
		role, err := models.ParseRole(arg)
		if err != nil {
			printlnFn("Unknown role:", arg)
			return nil
		}
		a.query.Role = role
	}
	a.query.Page = 1
	return a.renderUsers(ctx)
}

// FilterSuspended narrows the list by the suspended flag; "all" clears
// the filter.
func (a *App) FilterSuspended(ctx context.Context, arg string) error {
	if !a.gotoView(guard.ViewUsers) {
		return nil
	}

	switch strings.ToLower(arg) {
	case "all":
		a.query.Suspended = nil
	case "yes", "y", "true":
		v := true
		a.query.Suspended = &v
	case "no", "n", "false":
		v := false
		a.query.Suspended = &v
	default:
		printlnFn("Usage: suspended <yes|no|all>")
		return nil
	}
	a.query.Page = 1
	return a.renderUsers(ctx)
}

// NextPage advances the listing by one page.
func (a *App) NextPage(ctx context.Context) error {
	if !a.gotoView(guard.ViewUsers) {
		return nil
	}
	a.query.Page++
	return a.renderUsers(ctx)
}

// PrevPage walks the listing back by one page.
func (a *App) PrevPage(ctx context.Context) error {
	if !a.gotoView(guard.ViewUsers) {
		return nil
	}
	if a.query.Page > 1 {
		a.query.Page--
	}
	return a.renderUsers(ctx)
}

// renderUsers fetches and prints the current page of the directory.
func (a *App) renderUsers(ctx context.Context) error {
	page, err := a.users.List(ctx, a.query)
	if err != nil {
		a.report(ctx, err)
		return nil
	}

	// The backend clamps overshooting page numbers; trust its meta.
	a.query.Page = page.Meta.CurrentPage

	if len(page.Users) == 0 {
		printlnFn("No users match the current filters.")
		return nil
	}

	for _, u := range page.Users {
		marker := " "
		switch {
		case u.Deleted():
			marker = "D"
		case u.Suspended:
			marker = "S"
		}
		printfFn("%s %-6s %-22s %-16s %-9s %s\n", marker, u.ID, u.FullName(), u.Username, u.Role, u.Email)
	}
	printfFn("Page %d of %d (%d total)", page.Meta.CurrentPage, page.Meta.LastPage, page.Meta.Total)
	if page.Meta.HasNext() {
		printfFn(", 'next' for more")
	}
	printlnFn()
	return nil
}

// Show prints one user in full.
func (a *App) Show(ctx context.Context, id string) error {
	if !a.gotoView(guard.ViewUsers) {
		return nil
	}

	user, err := a.users.Get(ctx, id)
	if err != nil {
		a.report(ctx, err)
		return nil
	}
	printUser(user)
	return nil
}

// Add walks the create-user form: required identity fields, the role,
// then optional contact fields and attachments.
func (a *App) Add(ctx context.Context) error {
	if !a.gotoView(guard.ViewUsers) {
		return nil
	}

	params, err := a.promptCreateParams()
	if err != nil {
		a.report(ctx, err)
		return nil
	}

	user, err := a.users.Create(ctx, *params)
	if err != nil {
		a.report(ctx, err)
		return nil
	}

	a.notifier.Push(notify.LevelSuccess, "User "+user.Username+" created.")
	printfFn("Created user %s (id %s).\n", user.Username, user.ID)
	return nil
}

// Edit fetches a user and prompts for changes field by field. An empty
// answer keeps the current value and sends nothing for that field.
func (a *App) Edit(ctx context.Context, id string) error {
	if !a.gotoView(guard.ViewUsers) {
		return nil
	}

	current, err := a.users.Get(ctx, id)
	if err != nil {
		a.report(ctx, err)
		return nil
	}
	printUser(current)

	params, err := a.promptUpdateParams(current)
	if err != nil {
		a.report(ctx, err)
		return nil
	}

	user, err := a.users.Update(ctx, id, *params)
	if err != nil {
		a.report(ctx, err)
		return nil
	}

	a.notifier.Push(notify.LevelSuccess, "User "+user.Username+" updated.")
	printfFn("Updated user %s.\n", user.Username)
	return nil
}

// Delete soft-deletes a user after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	if !a.gotoView(guard.ViewUsers) {
		return nil
	}

	ok, err := GetConfirm(a.reader, "Delete user "+id+"? The record can be restored later.", os.Stdout)
	if err != nil || !ok {
		return err
	}

	if err := a.users.Delete(ctx, id); err != nil {
		a.report(ctx, err)
		return nil
	}
	a.notifier.Push(notify.LevelInfo, "User "+id+" deleted.")
	printlnFn("Deleted.")
	return nil
}

// Restore undoes a soft delete.
func (a *App) Restore(ctx context.Context, id string) error {
	if !a.gotoView(guard.ViewUsers) {
		return nil
	}

	user, err := a.users.Restore(ctx, id)
	if err != nil {
		a.report(ctx, err)
		return nil
	}
	a.notifier.Push(notify.LevelSuccess, "User "+user.Username+" restored.")
	printlnFn("Restored.")
	return nil
}

// Purge permanently removes a soft-deleted user after confirmation.
func (a *App) Purge(ctx context.Context, id string) error {
	if !a.gotoView(guard.ViewUsers) {
		return nil
	}

	ok, err := GetConfirm(a.reader, "Permanently remove user "+id+"? This cannot be undone.", os.Stdout)
	if err != nil || !ok {
		return err
	}

	if err := a.users.Purge(ctx, id); err != nil {
		a.report(ctx, err)
		return nil
	}
	a.notifier.Push(notify.LevelInfo, "User "+id+" purged.")
	printlnFn("Purged.")
	return nil
}

// promptCreateParams collects the create-user form.
func (a *App) promptCreateParams() (*models.CreateUserParams, error) {
	var params models.CreateUserParams
	var err error

	if params.FirstName, err = getSimpleText(a.reader, "First name", os.Stdout); err != nil {
		return nil, err
	}
	if params.LastName, err = getSimpleText(a.reader, "Last name", os.Stdout); err != nil {
		return nil, err
	}
	if params.Username, err = getSimpleText(a.reader, "Username", os.Stdout); err != nil {
		return nil, err
	}
	if params.Email, err = getSimpleText(a.reader, "Email", os.Stdout); err != nil {
		return nil, err
	}
	if params.Password, err = getPassword("Password", os.Stdout); err != nil {
		return nil, err
	}

	roleStr, err := getSimpleText(a.reader, "Role (admin/employee/trainee)", os.Stdout)
	if err != nil {
		return nil, err
	}
	if params.Role, err = models.ParseRole(roleStr); err != nil {
		return nil, err
	}

	if params.Phone, err = a.promptOptional("Phone (Enter to skip)"); err != nil {
		return nil, err
	}
	if params.Address, err = a.promptOptional("Address (Enter to skip)"); err != nil {
		return nil, err
	}

	deps, err := getSimpleText(a.reader, "Departments, comma-separated (Enter to skip)", os.Stdout)
	if err != nil {
		return nil, err
	}
	params.Departments = splitDepartments(deps)

	if params.EmergencyContact, err = a.promptEmergencyContact(); err != nil {
		return nil, err
	}
	if params.Photo, err = a.promptAttachment("Photo file path (Enter to skip)"); err != nil {
		return nil, err
	}
	if params.Document, err = a.promptAttachment("Document file path (Enter to skip)"); err != nil {
		return nil, err
	}

	return &params, nil
}

// promptUpdateParams collects the edit form. Empty answers leave the
// corresponding field out of the request entirely.
func (a *App) promptUpdateParams(current *models.UserProfile) (*models.UpdateUserParams, error) {
	var params models.UpdateUserParams
	var err error

	if params.FirstName, err = a.promptOptional("First name [" + current.FirstName + "]"); err != nil {
		return nil, err
	}
	if params.LastName, err = a.promptOptional("Last name [" + current.LastName + "]"); err != nil {
		return nil, err
	}
	if params.Username, err = a.promptOptional("Username [" + current.Username + "]"); err != nil {
		return nil, err
	}
	if params.Email, err = a.promptOptional("Email [" + current.Email + "]"); err != nil {
		return nil, err
	}

	pw, err := getPassword("New password (Enter to keep)", os.Stdout)
	if err != nil {
		return nil, err
	}
	if pw != "" {
		params.Password = &pw
	}

	roleStr, err := getSimpleText(a.reader, fmt.Sprintf("Role [%s] (Enter to keep)", current.Role), os.Stdout)
	if err != nil {
		return nil, err
	}
	if roleStr != "" {
		role, err := models.ParseRole(roleStr)
		if err != nil {
			return nil, err
		}
		params.Role = &role
	}

	if params.Phone, err = a.promptOptional("Phone [" + current.Phone + "]"); err != nil {
		return nil, err
	}
	if params.Address, err = a.promptOptional("Address [" + current.Address + "]"); err != nil {
		return nil, err
	}

	deps, err := getSimpleText(a.reader, "Departments, comma-separated (Enter to keep)", os.Stdout)
	if err != nil {
		return nil, err
	}
	params.Departments = splitDepartments(deps)

	suspended, err := getSimpleText(a.reader, fmt.Sprintf("Suspended? yes/no [%t] (Enter to keep)", current.Suspended), os.Stdout)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(suspended) {
	case "yes", "y", "true":
		v := true
		params.Suspended = &v
	case "no", "n", "false":
		v := false
		params.Suspended = &v
	}

	if params.Photo, err = a.promptAttachment("New photo file path (Enter to keep)"); err != nil {
		return nil, err
	}
	if params.Document, err = a.promptAttachment("New document file path (Enter to keep)"); err != nil {
		return nil, err
	}

	return &params, nil
}

// promptOptional reads a line and returns nil when the user skipped it.
func (a *App) promptOptional(prompt string) (*string, error) {
	text, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	return &text, nil
}

// promptEmergencyContact asks for the contact only when the user wants
// one; both fields are required once started.
func (a *App) promptEmergencyContact() (*models.EmergencyContact, error) {
	name, err := getSimpleText(a.reader, "Emergency contact name (Enter to skip)", os.Stdout)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, nil
	}
	phone, err := getSimpleText(a.reader, "Emergency contact phone", os.Stdout)
	if err != nil {
		return nil, err
	}
	return &models.EmergencyContact{Name: name, Phone: phone}, nil
}

// promptAttachment reads a local file path and loads it into memory.
// An empty answer skips the attachment.
func (a *App) promptAttachment(prompt string) (*models.FileAttachment, error) {
	path, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}
	return attachmentFromPath(path)
}

// attachmentFromPath loads a file and derives its content type from
// the extension, falling back to sniffing for extensionless scans.
func attachmentFromPath(path string) (*models.FileAttachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	att := &models.FileAttachment{
		Name: filepath.Base(path),
		Data: data,
	}
	att.ContentType = mime.TypeByExtension(filepath.Ext(path))
	if att.ContentType == "" {
		if imagex.IsPDF(att) {
			att.ContentType = "application/pdf"
		} else {
			att.ContentType = "application/octet-stream"
		}
	}
	return att, nil
}

// splitDepartments turns a comma-separated answer into a clean slice.
func splitDepartments(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
