// Package store provides the SQLite-backed table store the pipeline
// commands serialize through. Every write replaces the target table
// wholesale inside a single transaction, so rerunning a stage with
// unchanged inputs reproduces its output exactly and a failed stage
// leaves no partial table. There is no multi-table transaction;
// readers detect a crash between related writes through the missing
// table, not by assuming consistency.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/coelute/coelute/pkg/core"
)

// ErrMissingTable reports a violated schema precondition: a stage was
// asked to read a table its predecessor has not written.
var ErrMissingTable = errors.New("required table missing")

// Store is a handle on one pipeline file. A store supports one writer
// per table per run; concurrent writers must be serialized by the
// caller.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) a pipeline file.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

// HasTable reports whether a table exists.
func (s *Store) HasTable(name string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}
	return n > 0, nil
}

func (s *Store) requireTable(name string) error {
	ok, err := s.HasTable(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s (run the preceding stage first)", ErrMissingTable, name)
	}
	return nil
}

// replaceTable drops and recreates a table and bulk-inserts its rows
// through a prepared statement, all in one transaction.
func (s *Store) replaceTable(name, ddl, insertSQL string, indexes []string, n int, bind func(i int) []any) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DROP TABLE IF EXISTS ` + name); err != nil {
		return fmt.Errorf("failed to drop %s: %w", name, err)
	}
	if _, err := tx.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert for %s: %w", name, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.Exec(bind(i)...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", name, err)
		}
	}

	for _, idx := range indexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to index %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", name, err)
	}
	return nil
}

// ReplaceProteins writes the PROTEIN table.
func (s *Store) ReplaceProteins(rows []core.Protein) error {
	return s.replaceTable("PROTEIN",
		`CREATE TABLE PROTEIN (protein_id TEXT, protein_name TEXT, protein_mw REAL)`,
		`INSERT INTO PROTEIN (protein_id, protein_name, protein_mw) VALUES (?, ?, ?)`,
		[]string{`CREATE INDEX idx_protein_protein_id ON PROTEIN (protein_id)`},
		len(rows), func(i int) []any {
			r := rows[i]
			return []any{r.ProteinID, r.ProteinName, r.ProteinMW}
		})
}

// Proteins reads the PROTEIN table.
func (s *Store) Proteins() ([]core.Protein, error) {
	if err := s.requireTable("PROTEIN"); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT protein_id, protein_name, protein_mw FROM PROTEIN ORDER BY protein_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read PROTEIN: %w", err)
	}
	defer rows.Close()

	var out []core.Protein
	for rows.Next() {
		var r core.Protein
		if err := rows.Scan(&r.ProteinID, &r.ProteinName, &r.ProteinMW); err != nil {
			return nil, fmt.Errorf("failed to scan PROTEIN row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceNetwork writes the NETWORK table.
func (s *Store) ReplaceNetwork(rows []core.NetworkEdge) error {
	return s.replaceTable("NETWORK",
		`CREATE TABLE NETWORK (bait_id TEXT, prey_id TEXT, confidence REAL, decoy INTEGER)`,
		`INSERT INTO NETWORK (bait_id, prey_id, confidence, decoy) VALUES (?, ?, ?, ?)`,
		[]string{
			`CREATE INDEX idx_network_bait_id ON NETWORK (bait_id)`,
			`CREATE INDEX idx_network_prey_id ON NETWORK (prey_id)`,
			`CREATE INDEX idx_network_bait_id_prey_id ON NETWORK (bait_id, prey_id)`,
		},
		len(rows), func(i int) []any {
			r := rows[i]
			return []any{r.BaitID, r.PreyID, r.Confidence, decoyFlag(r.Label)}
		})
}

// Network reads the NETWORK table.
func (s *Store) Network() ([]core.NetworkEdge, error) {
	if err := s.requireTable("NETWORK"); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT bait_id, prey_id, confidence, decoy FROM NETWORK ORDER BY bait_id, prey_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read NETWORK: %w", err)
	}
	defer rows.Close()

	var out []core.NetworkEdge
	for rows.Next() {
		var r core.NetworkEdge
		var decoy int
		if err := rows.Scan(&r.BaitID, &r.PreyID, &r.Confidence, &decoy); err != nil {
			return nil, fmt.Errorf("failed to scan NETWORK row: %w", err)
		}
		r.Label = core.LabelFromDecoyFlag(decoy)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceFractions writes the SEC calibration table.
func (s *Store) ReplaceFractions(rows []core.SecFraction) error {
	return s.replaceTable("SEC",
		`CREATE TABLE SEC (run_id TEXT, sec_id INTEGER, sec_mw REAL, condition_id TEXT, replicate_id TEXT)`,
		`INSERT INTO SEC (run_id, sec_id, sec_mw, condition_id, replicate_id) VALUES (?, ?, ?, ?, ?)`,
		[]string{`CREATE INDEX idx_sec_run_id ON SEC (run_id)`},
		len(rows), func(i int) []any {
			r := rows[i]
			return []any{r.RunID, r.SecID, r.SecMW, r.ConditionID, r.ReplicateID}
		})
}

// Fractions reads the SEC calibration table.
func (s *Store) Fractions() ([]core.SecFraction, error) {
	if err := s.requireTable("SEC"); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT run_id, sec_id, sec_mw, condition_id, replicate_id FROM SEC ORDER BY condition_id, replicate_id, sec_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read SEC: %w", err)
	}
	defer rows.Close()

	var out []core.SecFraction
	for rows.Next() {
		var r core.SecFraction
		if err := rows.Scan(&r.RunID, &r.SecID, &r.SecMW, &r.ConditionID, &r.ReplicateID); err != nil {
			return nil, fmt.Errorf("failed to scan SEC row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceQuantifications writes the QUANTIFICATION table.
func (s *Store) ReplaceQuantifications(rows []core.Quantification) error {
	return s.replaceTable("QUANTIFICATION",
		`CREATE TABLE QUANTIFICATION (run_id TEXT, protein_id TEXT, peptide_id TEXT, peptide_intensity REAL)`,
		`INSERT INTO QUANTIFICATION (run_id, protein_id, peptide_id, peptide_intensity) VALUES (?, ?, ?, ?)`,
		[]string{
			`CREATE INDEX idx_quantification_run_id ON QUANTIFICATION (run_id)`,
			`CREATE INDEX idx_quantification_protein_id ON QUANTIFICATION (protein_id)`,
			`CREATE INDEX idx_quantification_peptide_id ON QUANTIFICATION (peptide_id)`,
		},
		len(rows), func(i int) []any {
			r := rows[i]
			return []any{r.RunID, r.ProteinID, r.PeptideID, r.PeptideIntensity}
		})
}

// Quantifications reads the QUANTIFICATION table.
func (s *Store) Quantifications() ([]core.Quantification, error) {
	if err := s.requireTable("QUANTIFICATION"); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT run_id, protein_id, peptide_id, peptide_intensity FROM QUANTIFICATION ORDER BY run_id, protein_id, peptide_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read QUANTIFICATION: %w", err)
	}
	defer rows.Close()

	var out []core.Quantification
	for rows.Next() {
		var r core.Quantification
		if err := rows.Scan(&r.RunID, &r.ProteinID, &r.PeptideID, &r.PeptideIntensity); err != nil {
			return nil, fmt.Errorf("failed to scan QUANTIFICATION row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplacePeptideMeta writes the PEPTIDE_META table.
func (s *Store) ReplacePeptideMeta(rows []core.PeptideMeta) error {
	return s.replaceTable("PEPTIDE_META",
		`CREATE TABLE PEPTIDE_META (peptide_id TEXT, protein_id TEXT, peptide_rank INTEGER)`,
		`INSERT INTO PEPTIDE_META (peptide_id, protein_id, peptide_rank) VALUES (?, ?, ?)`,
		[]string{`CREATE INDEX idx_peptide_meta_peptide_id ON PEPTIDE_META (peptide_id)`},
		len(rows), func(i int) []any {
			r := rows[i]
			return []any{r.PeptideID, r.ProteinID, r.PeptideRank}
		})
}

// PeptideMeta reads the PEPTIDE_META table.
func (s *Store) PeptideMeta() ([]core.PeptideMeta, error) {
	if err := s.requireTable("PEPTIDE_META"); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT peptide_id, protein_id, peptide_rank FROM PEPTIDE_META ORDER BY protein_id, peptide_rank, peptide_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read PEPTIDE_META: %w", err)
	}
	defer rows.Close()

	var out []core.PeptideMeta
	for rows.Next() {
		var r core.PeptideMeta
		if err := rows.Scan(&r.PeptideID, &r.ProteinID, &r.PeptideRank); err != nil {
			return nil, fmt.Errorf("failed to scan PEPTIDE_META row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceProteinMeta writes the PROTEIN_META table.
func (s *Store) ReplaceProteinMeta(rows []core.ProteinMeta) error {
	return s.replaceTable("PROTEIN_META",
		`CREATE TABLE PROTEIN_META (protein_id TEXT, intensity_bin INTEGER, left_sec_bin INTEGER, right_sec_bin INTEGER)`,
		`INSERT INTO PROTEIN_META (protein_id, intensity_bin, left_sec_bin, right_sec_bin) VALUES (?, ?, ?, ?)`,
		[]string{`CREATE INDEX idx_protein_meta_protein_id ON PROTEIN_META (protein_id)`},
		len(rows), func(i int) []any {
			r := rows[i]
			return []any{r.ProteinID, r.IntensityBin, r.LeftSecBin, r.RightSecBin}
		})
}

// ProteinMeta reads the PROTEIN_META table.
func (s *Store) ProteinMeta() ([]core.ProteinMeta, error) {
	if err := s.requireTable("PROTEIN_META"); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT protein_id, intensity_bin, left_sec_bin, right_sec_bin FROM PROTEIN_META ORDER BY protein_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read PROTEIN_META: %w", err)
	}
	defer rows.Close()

	var out []core.ProteinMeta
	for rows.Next() {
		var r core.ProteinMeta
		if err := rows.Scan(&r.ProteinID, &r.IntensityBin, &r.LeftSecBin, &r.RightSecBin); err != nil {
			return nil, fmt.Errorf("failed to scan PROTEIN_META row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceQueries writes the QUERY table (the candidate universe).
func (s *Store) ReplaceQueries(rows []core.CandidateQuery) error {
	return s.replaceTable("QUERY",
		`CREATE TABLE QUERY (bait_id TEXT, prey_id TEXT, decoy INTEGER)`,
		`INSERT INTO QUERY (bait_id, prey_id, decoy) VALUES (?, ?, ?)`,
		[]string{
			`CREATE INDEX idx_query_bait_id ON QUERY (bait_id)`,
			`CREATE INDEX idx_query_prey_id ON QUERY (prey_id)`,
			`CREATE INDEX idx_query_bait_id_prey_id ON QUERY (bait_id, prey_id)`,
		},
		len(rows), func(i int) []any {
			r := rows[i]
			return []any{r.BaitID, r.PreyID, decoyFlag(r.Label)}
		})
}

// Queries reads the QUERY table.
func (s *Store) Queries() ([]core.CandidateQuery, error) {
	if err := s.requireTable("QUERY"); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT bait_id, prey_id, decoy FROM QUERY ORDER BY decoy, bait_id, prey_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read QUERY: %w", err)
	}
	defer rows.Close()

	var out []core.CandidateQuery
	for rows.Next() {
		var r core.CandidateQuery
		var decoy int
		if err := rows.Scan(&r.BaitID, &r.PreyID, &decoy); err != nil {
			return nil, fmt.Errorf("failed to scan QUERY row: %w", err)
		}
		r.Label = core.LabelFromDecoyFlag(decoy)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceMonomers writes the MONOMER table.
func (s *Store) ReplaceMonomers(rows []core.MonomerRecord) error {
	return s.replaceTable("MONOMER",
		`CREATE TABLE MONOMER (protein_id TEXT, condition_id TEXT, replicate_id TEXT, monomer_sec_id INTEGER)`,
		`INSERT INTO MONOMER (protein_id, condition_id, replicate_id, monomer_sec_id) VALUES (?, ?, ?, ?)`,
		[]string{`CREATE INDEX idx_monomer_protein_id ON MONOMER (protein_id)`},
		len(rows), func(i int) []any {
			r := rows[i]
			return []any{r.ProteinID, r.ConditionID, r.ReplicateID, r.MonomerSecID}
		})
}

// Monomers reads the MONOMER table.
func (s *Store) Monomers() ([]core.MonomerRecord, error) {
	if err := s.requireTable("MONOMER"); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT protein_id, condition_id, replicate_id, monomer_sec_id FROM MONOMER ORDER BY protein_id, condition_id, replicate_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read MONOMER: %w", err)
	}
	defer rows.Close()

	var out []core.MonomerRecord
	for rows.Next() {
		var r core.MonomerRecord
		if err := rows.Scan(&r.ProteinID, &r.ConditionID, &r.ReplicateID, &r.MonomerSecID); err != nil {
			return nil, fmt.Errorf("failed to scan MONOMER row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const featureColumns = `bait_id, prey_id, decoy, condition_id, replicate_id, mic, tic,
	bait_peptides, prey_peptides, overlap, bait_apex_sec_id, prey_apex_sec_id, joint_apex_sec_id`

// ReplaceFeatures writes the FEATURE table.
func (s *Store) ReplaceFeatures(rows []core.FeatureRecord) error {
	return s.replaceTable("FEATURE",
		`CREATE TABLE FEATURE (bait_id TEXT, prey_id TEXT, decoy INTEGER, condition_id TEXT, replicate_id TEXT,
			mic REAL, tic REAL, bait_peptides INTEGER, prey_peptides INTEGER, overlap INTEGER,
			bait_apex_sec_id INTEGER, prey_apex_sec_id INTEGER, joint_apex_sec_id INTEGER)`,
		`INSERT INTO FEATURE (`+featureColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		[]string{`CREATE INDEX idx_feature_bait_id_prey_id ON FEATURE (bait_id, prey_id)`},
		len(rows), func(i int) []any {
			return bindFeature(&rows[i])
		})
}

// Features reads the FEATURE table.
func (s *Store) Features() ([]core.FeatureRecord, error) {
	if err := s.requireTable("FEATURE"); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT ` + featureColumns + ` FROM FEATURE ORDER BY decoy, bait_id, prey_id, condition_id, replicate_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read FEATURE: %w", err)
	}
	defer rows.Close()

	var out []core.FeatureRecord
	for rows.Next() {
		var r core.FeatureRecord
		var decoy int
		if err := rows.Scan(&r.BaitID, &r.PreyID, &decoy, &r.ConditionID, &r.ReplicateID,
			&r.MIC, &r.TIC, &r.BaitPeptides, &r.PreyPeptides, &r.Overlap,
			&r.BaitApexSecID, &r.PreyApexSecID, &r.JointApexSecID); err != nil {
			return nil, fmt.Errorf("failed to scan FEATURE row: %w", err)
		}
		r.Label = core.LabelFromDecoyFlag(decoy)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceScoredFeatures writes the FEATURE_SCORED table.
func (s *Store) ReplaceScoredFeatures(rows []core.ScoredFeature) error {
	return s.replaceTable("FEATURE_SCORED",
		`CREATE TABLE FEATURE_SCORED (bait_id TEXT, prey_id TEXT, decoy INTEGER, condition_id TEXT, replicate_id TEXT,
			mic REAL, tic REAL, bait_peptides INTEGER, prey_peptides INTEGER, overlap INTEGER,
			bait_apex_sec_id INTEGER, prey_apex_sec_id INTEGER, joint_apex_sec_id INTEGER,
			pvalue REAL NOT NULL, qvalue REAL, pep REAL)`,
		`INSERT INTO FEATURE_SCORED (`+featureColumns+`, pvalue, qvalue, pep) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		[]string{`CREATE INDEX idx_feature_scored_bait_id_prey_id ON FEATURE_SCORED (bait_id, prey_id)`},
		len(rows), func(i int) []any {
			r := &rows[i]
			return append(bindFeature(&r.FeatureRecord), r.PValue, r.QValue, r.PEP)
		})
}

// ScoredFeatures reads the FEATURE_SCORED table.
func (s *Store) ScoredFeatures() ([]core.ScoredFeature, error) {
	if err := s.requireTable("FEATURE_SCORED"); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT ` + featureColumns + `, pvalue, qvalue, pep FROM FEATURE_SCORED ORDER BY decoy, bait_id, prey_id, condition_id, replicate_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read FEATURE_SCORED: %w", err)
	}
	defer rows.Close()

	var out []core.ScoredFeature
	for rows.Next() {
		var r core.ScoredFeature
		var decoy int
		if err := rows.Scan(&r.BaitID, &r.PreyID, &decoy, &r.ConditionID, &r.ReplicateID,
			&r.MIC, &r.TIC, &r.BaitPeptides, &r.PreyPeptides, &r.Overlap,
			&r.BaitApexSecID, &r.PreyApexSecID, &r.JointApexSecID,
			&r.PValue, &r.QValue, &r.PEP); err != nil {
			return nil, fmt.Errorf("failed to scan FEATURE_SCORED row: %w", err)
		}
		r.Label = core.LabelFromDecoyFlag(decoy)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceComplexQM writes the COMPLEX_QM table.
func (s *Store) ReplaceComplexQM(rows []core.QuantMatrixEntry) error {
	return s.replaceTable("COMPLEX_QM",
		`CREATE TABLE COMPLEX_QM (entity_id TEXT, entity_kind TEXT, condition_id TEXT, replicate_id TEXT, value REAL)`,
		`INSERT INTO COMPLEX_QM (entity_id, entity_kind, condition_id, replicate_id, value) VALUES (?, ?, ?, ?, ?)`,
		[]string{`CREATE INDEX idx_complex_qm_entity_id ON COMPLEX_QM (entity_id)`},
		len(rows), func(i int) []any {
			r := rows[i]
			return []any{r.EntityID, r.Kind.String(), r.ConditionID, r.ReplicateID, r.Value}
		})
}

// ReplaceDifferential writes one differential result table. The level
// column is only present on "_LEVEL" tables and the log2fc column only
// on the directional table.
func (s *Store) ReplaceDifferential(table string, rows []core.DifferentialResult, withLevel, withFoldChange bool) error {
	cols := "condition_1, condition_2, bait_id, prey_id"
	ddl := "condition_1 TEXT, condition_2 TEXT, bait_id TEXT, prey_id TEXT"
	placeholders := "?, ?, ?, ?"
	if withLevel {
		cols += ", level"
		ddl += ", level TEXT"
		placeholders += ", ?"
	}
	if withFoldChange {
		cols += ", log2fc"
		ddl += ", log2fc REAL"
		placeholders += ", ?"
	}
	cols += ", pvalue, qvalue"
	ddl += ", pvalue REAL, qvalue REAL"
	placeholders += ", ?, ?"

	return s.replaceTable(table,
		`CREATE TABLE `+table+` (`+ddl+`)`,
		`INSERT INTO `+table+` (`+cols+`) VALUES (`+placeholders+`)`,
		nil,
		len(rows), func(i int) []any {
			r := rows[i]
			vals := []any{r.Condition1, r.Condition2, r.BaitID, r.PreyID}
			if withLevel {
				vals = append(vals, r.Level)
			}
			if withFoldChange {
				vals = append(vals, r.Log2FC)
			}
			return append(vals, r.PValue, r.QValue)
		})
}

// ReadTable dumps any table as a header plus string records, for CSV
// export. Numeric columns are rendered the way SQLite formats them.
func (s *Store) ReadTable(name string) (header []string, records [][]string, err error) {
	if err := s.requireTable(name); err != nil {
		return nil, nil, err
	}
	rows, err := s.db.Query(`SELECT * FROM ` + name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	defer rows.Close()

	header, err = rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read columns of %s: %w", name, err)
	}

	for rows.Next() {
		raw := make([]sql.NullString, len(header))
		ptrs := make([]any, len(header))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan %s row: %w", name, err)
		}
		rec := make([]string, len(header))
		for i, v := range raw {
			if v.Valid {
				rec[i] = v.String
			}
		}
		records = append(records, rec)
	}
	return header, records, rows.Err()
}

func decoyFlag(l core.Label) int {
	if l.IsDecoy() {
		return 1
	}
	return 0
}

func bindFeature(r *core.FeatureRecord) []any {
	return []any{r.BaitID, r.PreyID, decoyFlag(r.Label), r.ConditionID, r.ReplicateID,
		r.MIC, r.TIC, r.BaitPeptides, r.PreyPeptides, r.Overlap,
		r.BaitApexSecID, r.PreyApexSecID, r.JointApexSecID}
}
