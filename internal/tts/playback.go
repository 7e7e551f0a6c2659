package tts

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// PlayFile plays an audio file through the host's native player and removes
// the file afterwards. The temp file is deleted even when playback fails;
// by then it has either been heard or never will be.
func PlayFile(path string) error {
	defer os.Remove(path)

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("afplay", path).Run()
	case "windows":
		script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", path)
		return exec.Command("powershell", "-c", script).Run()
	default:
		// Linux and friends: try the common players in order.
		if err := exec.Command("mpg123", "-q", path).Run(); err == nil {
			return nil
		}
		return exec.Command("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", path).Run()
	}
}
