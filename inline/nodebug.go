//go:build !umarkdebug

package inline

// debugDefects makes unreachable parser states panic; without the umarkdebug
// build tag they are logged and degrade to plain content.
const debugDefects = false
