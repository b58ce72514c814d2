package email

// Template names a file under templates/ without its extension.
type Template string

const (
	TemplateWelcome       Template = "welcome"
	TemplateAccountStatus Template = "account_status"
)
