package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder holds the clinic domain counters. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	saleLines          prometheus.Counter
	unitsSold          prometheus.Counter
	insufficientStock  prometheus.Counter
	patientsRegistered prometheus.Counter
	patientsConsulted  prometheus.Counter
	recordsCreated     prometheus.Counter
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		saleLines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinic_sale_lines_total",
			Help: "Sale line items recorded against stock",
		}),
		unitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinic_units_sold_total",
			Help: "Stock units deducted by sales",
		}),
		insufficientStock: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinic_sale_insufficient_stock_total",
			Help: "Sale batches rejected for insufficient stock",
		}),
		patientsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinic_patients_registered_total",
			Help: "Patients registered into the queue",
		}),
		patientsConsulted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinic_patients_consulted_total",
			Help: "Patients moved from queued to consulted",
		}),
		recordsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clinic_records_created_total",
			Help: "Consultation records stored",
		}),
	}
	reg.MustRegister(r.saleLines, r.unitsSold, r.insufficientStock, r.patientsRegistered, r.patientsConsulted, r.recordsCreated)
	return r
}

func (r *Recorder) SaleRecorded(lines, units int) {
	if r == nil {
		return
	}
	r.saleLines.Add(float64(lines))
	r.unitsSold.Add(float64(units))
}

func (r *Recorder) InsufficientStock() {
	if r == nil {
		return
	}
	r.insufficientStock.Inc()
}

func (r *Recorder) PatientRegistered() {
	if r == nil {
		return
	}
	r.patientsRegistered.Inc()
}

func (r *Recorder) PatientConsulted() {
	if r == nil {
		return
	}
	r.patientsConsulted.Inc()
}

func (r *Recorder) RecordCreated() {
	if r == nil {
		return
	}
	r.recordsCreated.Inc()
}
