package artifact

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Fasta holds a single parsed sequence record.
type Fasta struct {
	// Description is the header line without the leading '>'.
	Description string
	// Sequence is the concatenation of all sequence lines of the first
	// record in the file.
	Sequence string
}

// ReadFasta parses the first sequence record of a FASTA file. Consensus
// files hold exactly one record; anything after a second header is ignored.
func ReadFasta(path string) (*Fasta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open fasta %s", path)
	}
	defer f.Close()

	var (
		rec     Fasta
		seq     strings.Builder
		started bool
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.HasPrefix(line, ">") {
			if started {
				break
			}
			rec.Description = strings.TrimSpace(line[1:])
			started = true
			continue
		}
		if !started {
			return nil, errors.Errorf("fasta %s does not start with a header line", path)
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "unable to read fasta %s", path)
	}
	if !started {
		return nil, errors.Errorf("fasta %s holds no sequence record", path)
	}

	rec.Sequence = seq.String()

	return &rec, nil
}
