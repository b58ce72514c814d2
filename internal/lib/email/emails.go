package email

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(to, name, role string) error {
	data := map[string]string{
		"UserName": name,
		"Role":     role,
	}

	return c.SendEmail(to, "Bem-vindo ao Field Service!", TemplateWelcome, data)
}

// SendAccountStatusEmail tells a user their account was activated or
// inactivated.
func (c *Client) SendAccountStatusEmail(to, name, status string) error {
	data := map[string]string{
		"UserName": name,
		"Status":   status,
	}

	return c.SendEmail(to, "Atualização da sua conta", TemplateAccountStatus, data)
}
