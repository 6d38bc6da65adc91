package mailer

import "fmt"

const confirmationSubject = "Account registration confirmation"

// ConfirmationMessage tells the user how to exchange their code for a token.
func ConfirmationMessage(email, username, code, tokenURL string) Message {
	body := fmt.Sprintf("Hello!\n\n"+
		"You (or someone else) requested registration on YaMDB.\n"+
		"To confirm it, send a POST request to %s with\n"+
		"\"username\": %q and \"confirmation_code\":\n\n%s\n",
		tokenURL, username, code)
	return Message{
		To:      []string{email},
		Subject: confirmationSubject,
		Body:    body,
	}
}
