package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// walletIDRe matches human-readable wallet ids: "swift-vault-4821".
var walletIDRe = regexp.MustCompile(`^[a-z]+-[a-z]+-\d{4}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("wallet_id", validateWalletID)
	}
}

func validateWalletID(fl validator.FieldLevel) bool {
	return walletIDRe.MatchString(fl.Field().String())
}

// ValidWalletID reports whether s is a well-formed wallet identifier. Used
// for path parameters, which bypass binding validation.
func ValidWalletID(s string) bool {
	return walletIDRe.MatchString(s)
}
