package pipeline

import (
	"fmt"
	"os"

	"github.com/matzehuels/timeline/pkg/errors"
	eventio "github.com/matzehuels/timeline/pkg/io"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// importAs reads path in an explicit format, or stdin when path is "-".
func importAs(path string, format eventio.Format) ([]timeline.Event, error) {
	if path == "-" {
		return eventio.ReadEvents(os.Stdin, format)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return eventio.ReadEvents(f, format)
}
