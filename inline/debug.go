//go:build umarkdebug

package inline

// debugDefects makes unreachable parser states panic.
const debugDefects = true
