package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mdp/qrterminal/v3"
	"github.com/pquerna/otp/totp"
)

// renderTOTPQR draws the otpauth URI as an ANSI QR code so it can be scanned
// straight off the terminal.
func renderTOTPQR(w io.Writer, uri string) {
	if uri == "" {
		return
	}
	qrterminal.GenerateWithConfig(uri, qrterminal.Config{
		Level:      qrterminal.L,
		Writer:     w,
		HalfBlocks: true,
		QuietZone:  1,
	})
}

// saveQRFile writes a QR PNG payload received from the gateway to disk.
func saveQRFile(path string, png []byte) error {
	return os.WriteFile(path, png, 0o600)
}

func qrFileName(username, kind string) string {
	if username == "" {
		username = "account"
	}
	return fmt.Sprintf("cofrap-%s-%s-qr.png", username, kind)
}

// currentTOTPCode computes the code an authenticator would currently show
// for the given base32 secret.
func currentTOTPCode(secret string) (string, error) {
	return totp.GenerateCode(strings.ToUpper(strings.TrimSpace(secret)), time.Now())
}
