// Package reply produces the canned reply text for a tone. There is no
// language model behind it: every tone maps to one fixed sentence, and the
// review or comment being answered is not consulted.
package reply

import (
	"errors"
	"fmt"

	"github.com/tbourn/moreply-backend/internal/domain"
)

// ErrUnknownTone is returned for an unset tone or one outside domain.Tones.
var ErrUnknownTone = errors.New("unknown tone")

var byTone = map[domain.Tone]string{
	domain.ToneFriendly:     "Thank you so much for your message! We really appreciate your support and we’re so happy you had a great experience with us. 😊",
	domain.ToneProfessional: "Thank you for taking the time to share this. We value your feedback and will use it to keep improving our service.",
	domain.TonePlayful:      "You just made our day! 🎉 Thanks for the love — we can’t wait to see you again soon!",
	domain.ToneApologetic:   "Thank you for letting us know about this. We’re really sorry for the inconvenience and we’re committed to making this right.",
	domain.ToneCustom:       "Thanks for the feedback. We’ll tailor our response style to match your brand’s voice and preferences.",
}

// Synthesize returns the reply for tone. The same tone always yields the
// same text.
func Synthesize(tone domain.Tone) (string, error) {
	s, ok := byTone[tone]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTone, string(tone))
	}
	return s, nil
}
