package licenses

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
)

//go:generate go run github.com/google/go-licenses@v1.6.0 save ../../cmd/fsl --save_path=third_party --force --ignore github.com/schemakit/fsl
//go:generate go run gen_notice.go

//go:embed assets/LICENSE
var licenseText string

//go:embed assets/THIRD_PARTY_NOTICES
var thirdPartyText string

func LicenseText() string {
	return strings.TrimRight(licenseText, "\n")
}

func ThirdPartyText() string {
	return strings.TrimRight(thirdPartyText, "\n")
}

// Fprint writes the primary license followed by the third-party notices
// for every dependency the fsl toolchain actually ships (see
// assets/THIRD_PARTY_NOTICES, regenerated by gen_notice.go against this
// module's own go.mod rather than carried over from any other project's
// dependency set). `fsl license` is a thin wrapper around this so the
// presentation lives alongside the text it presents.
func Fprint(w io.Writer) {
	fmt.Fprintln(w, "FSL License")
	fmt.Fprintln(w)
	fmt.Fprintln(w, LicenseText())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Third-Party Notices")
	fmt.Fprintln(w)
	fmt.Fprintln(w, ThirdPartyText())
	fmt.Fprintln(w)
}
