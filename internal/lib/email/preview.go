package email

// PreviewData holds sample values for every template, keyed by template name.
// It is used to render previews and to check that templates execute.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName": "Maria Silva",
		"Role":     "cliente",
	},
	TemplateAccountStatus: {
		"UserName": "Maria Silva",
		"Status":   "INATIVO",
	},
}
