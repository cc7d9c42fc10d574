package notifications

import "html/template"

var reminderTmpl = template.Must(template.New("reminder").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
  <div style="background-color: white; padding: 30px; border-radius: 10px; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #4CAF50;">WooFy - Recordatorio</h2>
    <h3 style="color: #333;">{{.Title}}</h3>
    <p style="color: #666; font-size: 16px; line-height: 1.6;">
      {{if .Description}}{{.Description}}{{else}}No hay descripción adicional{{end}}
    </p>
    <div style="background-color: #f0f7ff; padding: 15px; border-radius: 5px; margin: 20px 0;">
      <p style="margin: 0; color: #333;">
        <strong>Mascota:</strong> {{.PetName}}<br>
        <strong>Fecha:</strong> {{.When}}
      </p>
    </div>
    <p style="color: #888; font-size: 14px;">Este es un recordatorio automático de WooFy App.</p>
  </div>
</div>`))

var appointmentTmpl = template.Must(template.New("appointment").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
  <div style="background-color: white; padding: 30px; border-radius: 10px; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #2196F3;">Confirmación de Cita</h2>
    <p style="color: #666; font-size: 16px;">Tu cita ha sido confirmada exitosamente.</p>
    <div style="background-color: #e3f2fd; padding: 20px; border-radius: 5px; margin: 20px 0;">
      <p style="margin: 5px 0; color: #333;">
        <strong>Clínica:</strong> {{.ClinicName}}<br>
        <strong>Servicio:</strong> {{.ServiceName}}<br>
        <strong>Mascota:</strong> {{.PetName}}<br>
        <strong>Fecha:</strong> {{.When}}<br>
        {{if .Notes}}<strong>Notas:</strong> {{.Notes}}{{end}}
      </p>
    </div>
    <p style="color: #888; font-size: 14px;">¡No olvides llevar la cartilla de vacunación de tu mascota!</p>
  </div>
</div>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
  <div style="background-color: white; padding: 30px; border-radius: 10px; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #4CAF50;">¡Bienvenido a WooFy!</h2>
    <p style="color: #666; font-size: 16px; line-height: 1.6;">Hola {{if .Name}}{{.Name}}{{else}}amigo perruno{{end}},</p>
    <p style="color: #666; font-size: 16px; line-height: 1.6;">
      Gracias por unirte a WooFy, tu app de gestión de mascotas.
      Ahora podrás llevar un registro completo del cuidado de tus mascotas,
      agendar citas veterinarias y recibir recordatorios importantes.
    </p>
    <div style="text-align: center; margin: 30px 0;">
      <p style="font-size: 18px; color: #333;">¡Empieza agregando tu primera mascota!</p>
    </div>
    <p style="color: #888; font-size: 14px; text-align: center;">Si tienes alguna pregunta, no dudes en contactarnos.</p>
  </div>
</div>`))
