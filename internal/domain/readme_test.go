package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderReadme(t *testing.T) {
	pkg := &Package{
		Name:         "com.ugf.logs",
		DisplayName:  "UGF.Logs",
		Version:      "2.1.0",
		Unity:        "2019.3",
		Description:  "Logging utilities.",
		Dependencies: map[string]string{"com.ugf.runtime": "1.0.0", "com.ugf.build": "0.5.0"},
	}
	cfg := &ReadmeConfig{Closing: "Enjoy.", Footer: "> Copyright"}

	out := RenderReadme(pkg, cfg)

	assert.Equal(t,
		"# com.ugf.logs\r\n"+
			"UGF.Logs\r\n"+
			"\r\n"+
			"## Info\r\n"+
			"- **Version**: `2.1.0`\r\n"+
			"- **Unity**: `2019.3`\r\n"+
			"\r\n"+
			"### Dependencies\r\n"+
			"- com.ugf.build: `0.5.0`\r\n"+
			"- com.ugf.runtime: `1.0.0`\r\n"+
			"\r\n"+
			"### Description\r\n"+
			"Logging utilities.\r\n"+
			"\r\n"+
			"Enjoy.\r\n"+
			"\r\n> Copyright\r\n",
		out)
}

func TestRenderReadme_Defaults(t *testing.T) {
	pkg := &Package{Name: "pkg", Version: "1.0.0", API: ".NET 4.x", Dependencies: map[string]string{}}

	out := RenderReadme(pkg, &ReadmeConfig{FullDescription: "More text."})

	assert.Contains(t, out, "- **API Compatibility Level**: `.NET 4.x`\r\n")
	assert.Contains(t, out, "### Dependencies\r\n- N/A\r\n")
	assert.Contains(t, out, "No description.\r\n\r\nMore text.\r\n")
}

func TestPackage_Validate(t *testing.T) {
	var perr *ParseError

	err := (&Package{Version: "1.0.0"}).Validate("package.json")
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, "name", perr.Field)

	err = (&Package{Name: "pkg"}).Validate("package.json")
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, "version", perr.Field)

	assert.NoError(t, (&Package{Name: "pkg", Version: "1"}).Validate("package.json"))
}
