// Package faker generates randomized synthetic identities from an injectable
// random source, so runs are reproducible when seeded.
package faker

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Faker draws synthetic profile fields from a single random source.
// It is not safe for concurrent use; draw everything up front when fanning out.
type Faker struct {
	rng *rand.Rand
}

// New creates a Faker over the given random source.
func New(rng *rand.Rand) *Faker {
	return &Faker{rng: rng}
}

// NewSeeded creates a Faker from a seed. A zero seed picks the current time;
// the effective seed is returned for reproducibility.
func NewSeeded(seed int64) (*Faker, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return New(rand.New(rand.NewSource(seed))), seed
}

// Profile is the randomized identity submitted for one synthetic user.
// AvatarURL and Disabled are generated for parity with real user records even
// though the create endpoint only accepts the identity fields.
type Profile struct {
	Email         string
	Phone         string
	Password      string
	Name          string
	AvatarURL     string
	EmailVerified bool
	Disabled      bool
}

// Profile synthesizes one user profile. Phone is present roughly half the
// time; the verification and disabled flags are each a coin flip.
func (f *Faker) Profile() Profile {
	first := firstNames[f.rng.Intn(len(firstNames))]
	last := lastNames[f.rng.Intn(len(lastNames))]

	profile := Profile{
		Email:         f.email(first, last),
		Password:      f.Password(),
		Name:          first + " " + last,
		AvatarURL:     fmt.Sprintf("https://i.pravatar.cc/150?img=%d", f.rng.Intn(70)+1),
		EmailVerified: f.Bool(),
		Disabled:      f.Bool(),
	}
	if f.Bool() {
		profile.Phone = f.PhoneNumber()
	}
	return profile
}

// CompanyName generates a plausible organization name.
func (f *Faker) CompanyName() string {
	word := companyWords[f.rng.Intn(len(companyWords))]
	suffix := companySuffixes[f.rng.Intn(len(companySuffixes))]
	return word + " " + suffix
}

// PhoneNumber generates a UK-shaped mobile number: +44071 plus eight digits.
func (f *Faker) PhoneNumber() string {
	var b strings.Builder
	b.WriteString("+44071")
	for i := 0; i < 8; i++ {
		b.WriteByte(byte('0' + f.rng.Intn(10)))
	}
	return b.String()
}

// Password generates a 16-character random password.
func (f *Faker) Password() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"
	var b strings.Builder
	for i := 0; i < 16; i++ {
		b.WriteByte(alphabet[f.rng.Intn(len(alphabet))])
	}
	return b.String()
}

// Bool is a fair coin flip.
func (f *Faker) Bool() bool {
	return f.rng.Intn(2) == 0
}

// Intn draws a uniform value in [0, n).
func (f *Faker) Intn(n int) int {
	return f.rng.Intn(n)
}

// DisambiguateEmail inserts a 12-digit random number before the @ so repeated
// draws from the small name tables rarely collide on the backend's unique
// email constraint. Addresses without an @ are returned unchanged.
func (f *Faker) DisambiguateEmail(email string) string {
	local, domain, found := strings.Cut(email, "@")
	if !found {
		return email
	}
	return fmt.Sprintf("%s%012d@%s", local, f.rng.Int63n(1_000_000_000_000), domain)
}

func (f *Faker) email(first, last string) string {
	domain := emailDomains[f.rng.Intn(len(emailDomains))]
	return strings.ToLower(first) + "." + strings.ToLower(last) + "@" + domain
}
