package bioinfo

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/viromics/biometa/internal/artifact"
	"github.com/viromics/biometa/pkg/record"
)

// addConsensusSequence derives genome length, sequence name, file location,
// checksum and the sequenced base-pair count from each sample's consensus
// FASTA. Samples whose file is absent get the configured mapping fields set
// to the empty string and the run continues; the two derived numeric fields
// are only written on the success path.
func (m *Merger) addConsensusSequence(ctx context.Context, set record.Set) error {
	fields, err := m.resolver.Fields(topicAnalysis, subConsensus)
	if err != nil {
		return err
	}

	for _, rec := range set {
		name := record.ArtifactName(rec.SampleID()) + ".consensus.fa"
		path := filepath.Join(m.inputFolder, name)

		_, err = os.Stat(path)
		if err != nil {
			log.Printf("consensus file %s not found, consensus fields left empty", name)
			for field := range fields {
				rec[field] = ""
			}
			continue
		}

		fasta, err := artifact.ReadFasta(path)
		if err != nil {
			return err
		}
		sum, err := artifact.MD5Sum(path)
		if err != nil {
			return err
		}

		length := len(fasta.Sequence)
		rec["consensus_genome_length"] = strconv.Itoa(length)
		rec["consensus_sequence_name"] = fasta.Description
		rec["consensus_sequence_filepath"] = m.inputFolder
		rec["consensus_sequence_filename"] = name
		rec["consensus_sequence_md5"] = sum

		readLength, err := strconv.Atoi(rec["read_length"])
		if err != nil {
			return errors.Wrapf(err, "invalid read_length for sample %q", rec.SampleID())
		}
		basePairs := readLength * length
		// paired-end assumption: both mates contribute
		if rec.SampleID() != "" {
			basePairs *= 2
		}
		rec["number_of_base_pairs_sequenced"] = strconv.Itoa(basePairs)
	}

	return nil
}
