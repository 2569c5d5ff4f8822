package swap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/swapsies/swapsies/log"
	"github.com/swapsies/swapsies/swapsiestest/assert"
)

func TestMultiSink(t *testing.T) {
	var a, b EventRecorder
	var buf bytes.Buffer
	sink := MultiSink{&a, &b, LogSink{Logger: log.NewTMLogger(&buf)}}

	ask := referenceAsk()
	fp, err := FingerprintOf(ask)
	assert.Nil(t, err)

	sink.Publish(AskCreated{FP: fp, Ask: ask})
	sink.Publish(AskCancelled{Asker: ask.Asker, FP: fp, Ask: ask})
	sink.Publish(AskFilled{FP: fp, Ask: ask})

	want := []Event{
		AskCreated{FP: fp, Ask: ask},
		AskCancelled{Asker: ask.Asker, FP: fp, Ask: ask},
		AskFilled{FP: fp, Ask: ask},
	}
	assert.Equal(t, want, a.Events())
	assert.Equal(t, want, b.Events())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, 3, len(lines))
	for i, name := range []string{"AskCreated", "AskCancelled", "AskFilled"} {
		assert.True(t, strings.Contains(lines[i], "event="+name), "line %d: %s", i, lines[i])
		assert.True(t, strings.Contains(lines[i], "fingerprint="+fp.String()), "line %d: %s", i, lines[i])
		assert.True(t, strings.Contains(lines[i], "asker="+ask.Asker.String()), "line %d: %s", i, lines[i])
	}

	a.Reset()
	assert.Equal(t, 0, len(a.Events()))
	assert.Equal(t, 3, len(b.Events()))
}
