package postgres

import (
	"context"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"casillero/internal/model"
	"casillero/internal/repository"
)

// DecisionPostgres is a PostgreSQL implementation of repository.DecisionRepository.
// It issues parameterized queries only and contains no business logic.
type DecisionPostgres struct {
	db *sqlx.DB
}

// NewDecisionPostgres creates a new DecisionPostgres repository.
func NewDecisionPostgres(db *sqlx.DB) *DecisionPostgres {
	return &DecisionPostgres{db: db}
}

var _ repository.DecisionRepository = (*DecisionPostgres)(nil)

// FindByNDetalle fetches a single decision record by its detail identifier.
func (r *DecisionPostgres) FindByNDetalle(ctx context.Context, ndetalle string) (*model.Decision, error) {
	const q = `
		SELECT ndetalle, codigo_organo, codigo_recurso, especialidad_expe, organo_detalle, url
		FROM sentencias_y_autos
		WHERE ndetalle = $1
	`
	var d model.Decision
	if err := r.db.GetContext(ctx, &d, q, ndetalle); err != nil {
		return nil, err
	}
	return &d, nil
}

// FilterValues returns the distinct non-null values of each filterable column.
// Judge names are restricted to judges reachable from at least one decision
// through the association table.
func (r *DecisionPostgres) FilterValues(ctx context.Context) (*model.FilterValues, error) {
	const (
		qOrganCodes   = `SELECT DISTINCT codigo_organo FROM sentencias_y_autos WHERE codigo_organo IS NOT NULL`
		qAppealCodes  = `SELECT DISTINCT codigo_recurso FROM sentencias_y_autos WHERE codigo_recurso IS NOT NULL`
		qSpecialties  = `SELECT DISTINCT especialidad_expe FROM sentencias_y_autos WHERE especialidad_expe IS NOT NULL`
		qOrganDetails = `SELECT DISTINCT organo_detalle FROM sentencias_y_autos WHERE organo_detalle IS NOT NULL`
		qJudgeNames   = `
			SELECT DISTINCT j.nombre_juez
			FROM jueces j
			JOIN sentencias_jueces sj ON sj.codigo = j.codigo
			JOIN sentencias_y_autos s ON s.ndetalle = sj.ndetalle
			WHERE j.nombre_juez IS NOT NULL
		`
	)

	var (
		fv  model.FilterValues
		err error
	)
	if fv.OrganCodes, err = r.distinctValues(ctx, qOrganCodes); err != nil {
		return nil, err
	}
	if fv.AppealCodes, err = r.distinctValues(ctx, qAppealCodes); err != nil {
		return nil, err
	}
	if fv.Specialties, err = r.distinctValues(ctx, qSpecialties); err != nil {
		return nil, err
	}
	if fv.OrganDetails, err = r.distinctValues(ctx, qOrganDetails); err != nil {
		return nil, err
	}
	if fv.JudgeNames, err = r.distinctValues(ctx, qJudgeNames); err != nil {
		return nil, err
	}
	return &fv, nil
}

func (r *DecisionPostgres) distinctValues(ctx context.Context, q string) ([]string, error) {
	values := make([]string, 0)
	if err := r.db.SelectContext(ctx, &values, q); err != nil {
		return nil, err
	}
	return values, nil
}

// Search returns the total distinct match count and one page of distinct
// (ndetalle, storage path) pairs for the given filters.
func (r *DecisionPostgres) Search(ctx context.Context, f repository.SearchFilters, pq repository.PageQuery) (*repository.PageResult[model.SearchItem], error) {
	// Count distinct identifiers. The judge join can emit several rows per
	// decision, so a bare COUNT(*) would overcount.
	countSb := searchBuilder(f)
	countSb.Select("COUNT(DISTINCT s.ndetalle)")
	countQuery, countArgs := countSb.Build()

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, err
	}

	// Fetch the page over the exact same FROM/JOIN/WHERE shape so the count
	// stays consistent with what further pages would return.
	pageSb := searchBuilder(f)
	pageSb.Select("s.ndetalle", "s.url")
	pageSb.Distinct()
	pageSb.OrderBy("s.ndetalle")
	pageSb.Limit(pq.Limit)
	pageSb.Offset(pq.Offset)
	pageQuery, pageArgs := pageSb.Build()

	items := make([]model.SearchItem, 0)
	if err := r.db.SelectContext(ctx, &items, pageQuery, pageArgs...); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.SearchItem]{
		Items: items,
		Total: total,
	}, nil
}

// searchBuilder assembles the FROM/JOIN/WHERE shape shared by the count and
// page queries. Filter values are always bound parameters; only the join
// option and the condition list vary with the present filters.
func searchBuilder(f repository.SearchFilters) *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.From("sentencias_y_autos s")

	// Filtering by judge must restrict results to decisions with a matching
	// judge, so the chain joins inner. Without that filter the same chain is
	// left-joined and decisions with no judge association stay in the result,
	// keeping the table shape uniform for ordering and column references.
	join := sqlbuilder.LeftJoin
	if f.ByJudge() {
		join = sqlbuilder.InnerJoin
	}
	sb.JoinWithOption(join, "sentencias_jueces sj", "sj.ndetalle = s.ndetalle")
	sb.JoinWithOption(join, "jueces j", "j.codigo = sj.codigo")

	conds := make([]string, 0, 5)
	if f.OrganCode != "" {
		conds = append(conds, sb.Equal("s.codigo_organo", f.OrganCode))
	}
	if f.AppealCode != "" {
		conds = append(conds, sb.Equal("s.codigo_recurso", f.AppealCode))
	}
	if f.Specialty != "" {
		conds = append(conds, sb.Equal("s.especialidad_expe", f.Specialty))
	}
	if f.OrganDetail != "" {
		conds = append(conds, sb.Equal("s.organo_detalle", f.OrganDetail))
	}
	if f.JudgeName != "" {
		conds = append(conds, sb.Equal("j.nombre_juez", f.JudgeName))
	}
	if len(conds) > 0 {
		sb.Where(conds...)
	}
	return sb
}
