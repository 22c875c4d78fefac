package email

import "fmt"

// SignatureRequest builds the mail asking a party to sign an appointment.
func SignatureRequest(to, party, designation, link string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Signature requested: %s appointment", designation),
		Text: fmt.Sprintf(
			"You have been asked to sign a %s appointment as the %s.\n\nOpen the link below to review and sign:\n%s\n",
			designation, party, link,
		),
	}
}

// BallotInvite builds the mail carrying a voter's single-use ballot link.
func BallotInvite(to, name, election, link string) Message {
	return Message{
		To:      to,
		ToName:  name,
		Subject: fmt.Sprintf("Your ballot: %s", election),
		Text: fmt.Sprintf(
			"Hello %s,\n\nYou are registered to vote in %s. Your personal ballot link works once voting opens and can be used once:\n%s\n",
			name, election, link,
		),
	}
}

// PPESignatureRequest builds the mail asking a person to acknowledge issued PPE.
func PPESignatureRequest(to, name, item, link string) Message {
	return Message{
		To:      to,
		ToName:  name,
		Subject: "Please acknowledge your PPE issue",
		Text: fmt.Sprintf(
			"Hello %s,\n\nPlease sign for the %s issued to you:\n%s\n",
			name, item, link,
		),
	}
}
