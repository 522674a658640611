// internal/app/features/login/formstate.go
package login

// FormState is the client-side state of the login form. The live
// transitions run in the browser (public/static/js/login.js); this type
// mirrors them so the server renders the matching initial markup. The typed
// password lives only in the input element.
type FormState struct {
	PasswordRevealed bool
	SubmitDisabled   bool
}

// TogglePasswordReveal flips the password field between hidden and shown.
func (s *FormState) TogglePasswordReveal() {
	s.PasswordRevealed = !s.PasswordRevealed
}

// Submit disables the submit button. There is no way back: the browser
// navigates away on a successful post.
func (s *FormState) Submit() {
	s.SubmitDisabled = true
}

// PasswordInputType is the type attribute of the password input.
func (s FormState) PasswordInputType() string {
	if s.PasswordRevealed {
		return "text"
	}
	return "password"
}

// ToggleLabelKey is the message key of the reveal button's aria-label.
func (s FormState) ToggleLabelKey() string {
	if s.PasswordRevealed {
		return "hidePassword"
	}
	return "showPassword"
}
