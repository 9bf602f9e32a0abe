package state

import "time"

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		// simple card back drawn as vector art - used when a card has
		// neither located art nor description text
		PlaceholderArt: []byte(`<svg viewBox="0 0 420 600" xmlns="http://www.w3.org/2000/svg">
  <rect x="6" y="6" width="408" height="588" rx="18"
    fill="none" stroke="black" stroke-width="4"/>
  <rect x="42" y="54" width="336" height="492" rx="10"
    fill="none" stroke="black" stroke-width="2"/>
  <path d="
    M210 150
    L270 300
    L210 450
    L150 300
    Z

    M210 210
    L240 300
    L210 390
    L180 300
    Z
  "
  fill="none" stroke="black" stroke-width="3"/>
  <circle cx="210" cy="300" r="16" fill="none" stroke="black" stroke-width="2"/>
</svg>`),
	}
}
