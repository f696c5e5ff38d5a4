package clinvar

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/inodb/clinvar-txt/internal/vcf"
)

const testHeader = "##fileformat=VCFv4.1\n" +
	"##fileDate=2021-01-15\n" +
	"##source=ClinVar\n" +
	"##reference=GRCh37\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"

const expertPanelLine = "1\t100\trs123\tA\tG\t.\t.\t" +
	"ALLELEID=5;CLNDN=Some_Disease;CLNSIG=Pathogenic;CLNREVSTAT=reviewed_by_expert_panel;RS=123"

func writeGzipFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clinvar.vcf.gz")
	f, err := os.Create(path)
	require.NoError(t, err)

	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	return path
}

func extractString(t *testing.T, content string) ([]Record, Metadata, Stats, error) {
	t.Helper()

	var recs []Record
	meta, stats, err := NewExtractor().ExtractReader(context.Background(), strings.NewReader(content), func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	return recs, meta, stats, err
}

func TestExtract_Scenario(t *testing.T) {
	path := writeGzipFile(t, testHeader+expertPanelLine+"\n")

	res, err := NewExtractor().ExtractAll(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, Metadata{GenomeReference: "GRCh37", ReleaseDate: "20210115"}, res.Metadata)
	require.Len(t, res.Records, 1)
	assert.Equal(t,
		"1\t100\tA\tG\trs123\tPathogenic\treviewed_by_expert_panel\t3\tSome Disease\t5\t123",
		res.Records[0].String())
	assert.Equal(t, Stats{Lines: 6, Header: 5, Variants: 1, Accepted: 1}, res.Stats)
}

func TestExtract_SkipsNonPrimaryChromosome(t *testing.T) {
	content := testHeader +
		"GL000220.1\t100\t1\tA\tG\t.\t.\tCLNREVSTAT=practice_guideline\n" +
		"NW_003315950.2\t5\t2\tC\tT\t.\t.\t.\n" +
		"chrMT\t7\t3\tC\tT\t.\t.\t.\n"

	recs, _, stats, err := extractString(t, content)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "chrMT", recs[0].Chrom)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 3, stats.Variants)
}

func TestExtract_Defaults(t *testing.T) {
	recs, _, _, err := extractString(t, testHeader+"X\t5\t99\tC\tCT\t.\t.\tCLNVC=Insertion;ORIGIN=1\n")
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, []string{"X", "5", "C", "CT", "99", ".", ".", "0", ".", ".", "."}, recs[0].Fields())
}

func TestExtract_InvalidFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong version", "##fileformat=VCFv3.3\n##reference=GRCh37\n" + expertPanelLine + "\n"},
		{"format not first", "##reference=GRCh37\n##fileformat=VCFv4.1\n" + expertPanelLine + "\n"},
		{"no header", expertPanelLine + "\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, _, _, err := extractString(t, tt.content)
			assert.ErrorIs(t, err, ErrInvalidFormat)
			assert.Empty(t, recs)
		})
	}
}

func TestExtract_UnknownReviewStatus(t *testing.T) {
	content := testHeader + "2\t10\t7\tG\tA\t.\t.\tCLNREVSTAT=criteria_provided,_made_up\n"

	_, _, _, err := extractString(t, content)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownReviewStatus)

	var rsErr *UnknownReviewStatusError
	require.True(t, errors.As(err, &rsErr))
	assert.Equal(t, "criteria_provided,_made_up", rsErr.Status)
	assert.Equal(t, 6, rsErr.Line)
}

func TestExtract_ShortDataLine(t *testing.T) {
	_, _, _, err := extractString(t, testHeader+"3\t10\t7\tG\tA\n")

	var pErr *vcf.ParseError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, 6, pErr.Line)
}

func TestExtract_RepeatedDirectivesOverwrite(t *testing.T) {
	content := "##fileformat=VCFv4.1\n##reference=GRCh37\n##fileDate=2020-01-01\n" +
		"##reference=GRCh38\n##fileDate=2021-02-03\n"

	_, meta, _, err := extractString(t, content)
	require.NoError(t, err)
	assert.Equal(t, Metadata{GenomeReference: "GRCh38", ReleaseDate: "20210203"}, meta)
}

func TestExtract_HeaderAfterData(t *testing.T) {
	content := testHeader + expertPanelLine + "\n##reference=GRCh38\n" + expertPanelLine + "\n"

	recs, meta, _, err := extractString(t, content)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, "GRCh38", meta.GenomeReference)
}

func TestExtract_PreservesOrder(t *testing.T) {
	var b strings.Builder
	b.WriteString(testHeader)
	chroms := []string{"2", "1", "chr22", "Y", "X", "10"}
	for _, c := range chroms {
		b.WriteString(c + "\t1\tid\tA\tT\t.\t.\tCLNSIG=Benign\n")
	}

	recs, _, _, err := extractString(t, b.String())
	require.NoError(t, err)
	require.Len(t, recs, len(chroms))
	for i, c := range chroms {
		assert.Equal(t, c, recs[i].Chrom)
		assert.Len(t, strings.Split(recs[i].String(), "\t"), 11)
	}
}

func TestExtract_CallbackError(t *testing.T) {
	stop := errors.New("stop")
	_, stats, err := NewExtractor().ExtractReader(context.Background(),
		strings.NewReader(testHeader+expertPanelLine+"\n"+expertPanelLine+"\n"),
		func(Record) error { return stop })

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 0, stats.Accepted)
}

func TestExtract_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewExtractor().ExtractReader(ctx, strings.NewReader(testHeader), func(Record) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtract_Idempotent(t *testing.T) {
	path := writeGzipFile(t, testHeader+expertPanelLine+"\n"+
		"chr7\t55\t8\tT\tC\t.\t.\tALLELEID=9;CLNREVSTAT=no_assertion_provided\n")

	e := NewExtractor()
	first, err := e.ExtractAll(context.Background(), path)
	require.NoError(t, err)
	second, err := e.ExtractAll(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := NewExtractor().ExtractAll(context.Background(), filepath.Join(t.TempDir(), "nope.vcf.gz"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type recordingObserver struct {
	total   int
	updates []int
	done    bool
}

func (o *recordingObserver) Start(total int) { o.total = total }
func (o *recordingObserver) Update(n int)    { o.updates = append(o.updates, n) }
func (o *recordingObserver) Finish()         { o.done = true }

func TestExtract_ProgressWithPrescan(t *testing.T) {
	path := writeGzipFile(t, testHeader+expertPanelLine+"\n"+
		"GL000220.1\t1\t1\tA\tG\t.\t.\t.\n"+
		expertPanelLine+"\n")

	obs := &recordingObserver{}
	e := NewExtractor()
	e.SetProgress(obs)
	e.SetPrescan(true)

	res, err := e.ExtractAll(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)

	assert.Equal(t, 8, obs.total)
	assert.Equal(t, []int{1, 2, 3}, obs.updates)
	assert.True(t, obs.done)
}

func TestExtract_LogsMetadata(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	e := NewExtractor()
	e.SetLogger(zap.New(core))
	_, _, err := e.ExtractReader(context.Background(), strings.NewReader(testHeader), func(Record) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("data release date found").Len())
	assert.Equal(t, 1, logs.FilterMessage("reference genome assembly version").Len())
}
