package firestarter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	params := NewParameters(map[string]string{
		"VERSION": "0.0.1-SNAPSHOT",
		"VARIANT": "Z",
		"NESTED":  "${VARIANT}",
		"A":       "short",
		"AB":      "long",
	})

	testCases := []struct {
		name string
		text string
		want string
	}{
		{"no placeholders", "plain.jar", "plain.jar"},
		{"single", "target1-${VERSION}.jar", "target1-0.0.1-SNAPSHOT.jar"},
		{"several", "target2-${VERSION}-${VARIANT}.jar", "target2-0.0.1-SNAPSHOT-Z.jar"},
		{"repeated", "${VARIANT}${VARIANT}", "ZZ"},
		{"unknown left verbatim", "${MISSING}-${VARIANT}", "${MISSING}-Z"},
		{"not recursive", "${NESTED}", "${VARIANT}"},
		{"prefix keys are distinct", "${A}/${AB}", "short/long"},
		{"unterminated", "${VERSION", "${VERSION"},
		{"case sensitive", "${version}", "${version}"},
		{"bare dollar", "$VERSION", "$VERSION"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Substitute(params, tc.text))
		})
	}
}

func TestSubstituteWithoutParameters(t *testing.T) {
	assert.Equal(t, "${X}", Substitute(Parameters{}, "${X}"))
	assert.Equal(t, 0, Parameters{}.Len())
}

func TestParametersAreCopied(t *testing.T) {
	values := map[string]string{"X": "1"}
	params := NewParameters(values)
	values["X"] = "2"

	assert.Equal(t, "1", Substitute(params, "${X}"))
	assert.Equal(t, 1, params.Len())
}
