package dto

import (
	"trs/internal/domains/table/model"
)

type TableResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Seats int    `json:"seats"`
}

func (r *TableResponse) FromModel(model model.Table) {
	r.ID = model.ID
	r.Name = model.Name
	r.Seats = model.Seats
}

type GetTablesResponse struct {
	Tables []TableResponse `json:"tables"`
}

func (r *GetTablesResponse) FromModels(models []model.Table) {
	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
