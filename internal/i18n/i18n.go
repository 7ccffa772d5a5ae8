// Package i18n translates the careers site's user-facing strings.
package i18n

import (
	"golang.org/x/text/language"
)

// Keys used by the careers site.
const (
	FirstName           = "FIRST_NAME"
	LastName            = "LAST_NAME"
	Email               = "EMAIL"
	Phone               = "PHONE"
	Resume              = "RESUME"
	AcceptedResume      = "ACCEPTED_RESUME"
	Consent             = "CONSENT"
	ThankYou            = "THANK_YOU"
	YouWillBeContacted  = "YOU_WILL_BE_CONTACTED"
	ApplyError          = "APPLY_ERROR"
	RequiredField       = "REQUIRED_FIELD"
	InvalidEmail        = "INVALID_EMAIL"
	MustAcceptPrivacy   = "MUST_ACCEPT_PRIVACY"
	UnsupportedFileType = "UNSUPPORTED_FILE_TYPE"
	InvalidOption       = "INVALID_OPTION"
)

var catalogs = []struct {
	tag      language.Tag
	messages map[string]string
}{
	{language.AmericanEnglish, map[string]string{
		FirstName:           "First Name",
		LastName:            "Last Name",
		Email:               "Email",
		Phone:               "Phone",
		Resume:              "Resume",
		AcceptedResume:      "Accepted resume types:",
		Consent:             "By checking this box you're agreeing to our Privacy Policy",
		ThankYou:            "Thank you!",
		YouWillBeContacted:  "You will be contacted soon.",
		ApplyError:          "Something went wrong while submitting your application. Please try again.",
		RequiredField:       "This field is required",
		InvalidEmail:        "Please enter a valid email address",
		MustAcceptPrivacy:   "You must accept the privacy policy to apply",
		UnsupportedFileType: "This file type is not accepted",
		InvalidOption:       "Please choose one of the listed options",
	}},
	{language.French, map[string]string{
		FirstName:           "Prénom",
		LastName:            "Nom",
		Email:               "E-mail",
		Phone:               "Téléphone",
		Resume:              "CV",
		AcceptedResume:      "Formats de CV acceptés :",
		Consent:             "En cochant cette case, vous acceptez notre politique de confidentialité",
		ThankYou:            "Merci !",
		YouWillBeContacted:  "Nous vous contacterons prochainement.",
		ApplyError:          "Une erreur est survenue lors de l'envoi de votre candidature. Veuillez réessayer.",
		RequiredField:       "Ce champ est obligatoire",
		InvalidEmail:        "Veuillez saisir une adresse e-mail valide",
		MustAcceptPrivacy:   "Vous devez accepter la politique de confidentialité pour postuler",
		UnsupportedFileType: "Ce type de fichier n'est pas accepté",
		InvalidOption:       "Veuillez choisir une des options proposées",
	}},
	{language.Spanish, map[string]string{
		FirstName:           "Nombre",
		LastName:            "Apellido",
		Email:               "Correo electrónico",
		Phone:               "Teléfono",
		Resume:              "Currículum",
		AcceptedResume:      "Tipos de currículum aceptados:",
		Consent:             "Al marcar esta casilla acepta nuestra Política de Privacidad",
		ThankYou:            "¡Gracias!",
		YouWillBeContacted:  "Nos pondremos en contacto con usted pronto.",
		ApplyError:          "Se produjo un error al enviar su solicitud. Inténtelo de nuevo.",
		RequiredField:       "Este campo es obligatorio",
		InvalidEmail:        "Introduzca un correo electrónico válido",
		MustAcceptPrivacy:   "Debe aceptar la política de privacidad para postularse",
		UnsupportedFileType: "Este tipo de archivo no es aceptado",
		InvalidOption:       "Elija una de las opciones de la lista",
	}},
}

// Translator resolves a key for the best supported match of a locale or an
// Accept-Language header value.
type Translator struct {
	matcher  language.Matcher
	fallback int
}

// New returns a Translator whose fallback is defaultLocale (or English when
// defaultLocale is not supported).
func New(defaultLocale string) *Translator {
	tags := make([]language.Tag, len(catalogs))
	for i, c := range catalogs {
		tags[i] = c.tag
	}
	t := &Translator{matcher: language.NewMatcher(tags)}
	if defaultLocale != "" {
		_, idx, conf := t.matcher.Match(language.Make(defaultLocale))
		if conf != language.No {
			t.fallback = idx
		}
	}
	return t
}

// Translate returns the message for key. locale may be a single tag or an
// Accept-Language header value. Unknown keys are returned as is.
func (t *Translator) Translate(locale, key string) string {
	idx := t.fallback
	if tags, _, err := language.ParseAcceptLanguage(locale); err == nil && len(tags) > 0 {
		if _, i, conf := t.matcher.Match(tags...); conf != language.No {
			idx = i
		}
	}
	if msg, ok := catalogs[idx].messages[key]; ok {
		return msg
	}
	if msg, ok := catalogs[0].messages[key]; ok {
		return msg
	}
	return key
}
