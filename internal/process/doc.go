// Package process terminates browser process trees left behind by a render.
package process
