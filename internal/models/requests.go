package models

// FileAttachment is an in-memory file destined for a multipart request part.
// Small identity documents and photos only; the upload preflight enforces the
// backend's size cap before anything is sent.
type FileAttachment struct {
	Name        string // original filename, sent in the part header
	ContentType string
	Data        []byte
}

// EmergencyContact is the nested contact object on a staff record. It travels
// as a single JSON-encoded multipart part.
type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateUserParams carries every field of the create-user form. Optional
// fields are pointers or nil-able values: nil means "not provided" and the
// field is omitted from the multipart body entirely.
type CreateUserParams struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	Role      Role

	Phone            *string
	Address          *string
	Departments      []string
	EmergencyContact *EmergencyContact
	Photo            *FileAttachment
	Document         *FileAttachment
}

// UpdateUserParams is the partial-update form: every field is optional and
// only provided fields become multipart parts. A pointer to an empty string
// is a deliberate "set to empty", which is distinct from nil.
type UpdateUserParams struct {
	FirstName *string
	LastName  *string
	Username  *string
	Email     *string
	Password  *string
	Role      *Role

	Phone            *string
	Address          *string
	Departments      []string
	EmergencyContact *EmergencyContact
	Photo            *FileAttachment
	Document         *FileAttachment
	Suspended        *bool
}

// ListUsersQuery narrows and pages the user directory listing.
type ListUsersQuery struct {
	Page      int
	PerPage   int
	Search    string
	Role      Role  // empty means any
	Suspended *bool // nil means any
}
