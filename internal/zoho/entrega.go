package zoho

import (
	"fmt"
	"html"
	"strings"

	"garantias-service/internal/model"
	"garantias-service/internal/moneda"
)

// BuildEntregaHTML arma el resumen que se comenta en el ticket al entregar:
// piezas con cantidad y precio total en MXN, más clasificación y medio de
// entrega de la solicitud.
func BuildEntregaHTML(s *model.Solicitud) string {
	var rows strings.Builder
	for _, it := range s.Items {
		total := moneda.ToMXN(moneda.Total(it.Cantidad, it.PrecioUnitario), it.MonedaPrecio)
		fmt.Fprintf(&rows, `
      <tr>
        <td>%s</td>
        <td>%s</td>
        <td class="num">%g %s</td>
        <td class="num">%s</td>
      </tr>`,
			html.EscapeString(it.NumeroParte),
			html.EscapeString(it.Descripcion),
			it.Cantidad,
			html.EscapeString(it.Unidad),
			formatMXN(total),
		)
	}
	itemsRows := rows.String()
	if itemsRows == "" {
		itemsRows = `<tr><td colspan="4" style="padding:10px; color:#64748b;">Sin items.</td></tr>`
	}

	return fmt.Sprintf(`
  <div style="font-family: ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto, Arial; color:#0f172a;">
    <div style="padding:16px; border-radius:12px; background:#f3f4f6; border:1px solid #d1d5db;">
      <h2 style="margin:0 0 6px; font-size:18px;">Orden de Trabajo entregada ✅</h2>
      <div style="font-size:12px; color:#475569; margin-bottom:10px;">Estatus: <strong>PIEZAS ENTREGADAS</strong>.</div>

      <table style="width:100%%; border-collapse:separate; border-spacing:0 8px; font-size:13px;">
        <tr>
          <td style="width:180px; color:#64748b;">Clasificación de Garantía:</td>
          <td>%s</td>
        </tr>
        <tr>
          <td style="color:#64748b;">Medio de Entrega:</td>
          <td>%s</td>
        </tr>
      </table>

      <div style="margin-top:14px; font-weight:600;">Piezas relacionadas</div>
      <table style="width:100%%; border:1px solid #e2e8f0; border-radius:10px; overflow:hidden; font-size:13px;">
        <thead>
          <tr style="background:#ef4444; color:white;">
            <th style="text-align:left; padding:8px 10px; width:120px;">Número</th>
            <th style="text-align:left; padding:8px 10px;">Descripción</th>
            <th style="text-align:right; padding:8px 10px; width:140px;">Cantidad</th>
            <th style="text-align:right; padding:8px 10px; width:140px;">Precio total</th>
          </tr>
        </thead>
        <tbody>%s
        </tbody>
      </table>

      <div style="margin-top:12px; font-size:12px; color:#64748b;">
        Generado automáticamente por la plataforma de garantías.
      </div>
    </div>
  </div>`,
		orGuion(s.ClasificacionGarantia),
		orGuion(s.MedioEntrega),
		itemsRows,
	)
}

func formatMXN(v float64) string {
	return fmt.Sprintf("$%.2f MXN", v)
}

func orGuion(v string) string {
	if v == "" {
		return "-"
	}
	return html.EscapeString(v)
}
