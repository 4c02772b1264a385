package forms

// fieldDictionary maps submission field names to Zendesk custom field ids.
// Order is the order custom fields are appended to a ticket.
var fieldDictionary = []Field{
	{Name: "SubAsunto", ID: 31386061455515},
	{Name: "Tienda", ID: 24020021733787},
	{Name: "Países", ID: 24019769142299},
	{Name: "Marcas", ID: 24019332736923},
	{Name: "Partner", ID: 24019248086171},
	{Name: "Interno", ID: 24286061103643},
	{Name: "channel", ID: 24263069147419},
	{Name: "Channels", ID: 25595792953115},
	{Name: "ImageUrl", ID: 24020399637531},
	{Name: "Subtipo", ID: 24264624936219},
	{Name: "ModalidadEnvio", ID: 24265050367899},
	{Name: "UpdateData", ID: 25210576894747},
	{Name: "TipoPublicacion", ID: 25470662460059},
	{Name: "IdentificadorDeLaPromocion", ID: 27679356223131},
	{Name: "TiendasARetirar", ID: 27679447764123},
	{Name: "NombreDeLaPromocion", ID: 27679569250459},
	{Name: "TipoPromocion", ID: 24264037317019},
	{Name: "SubtipoPromocionTienda", ID: 24263625359259},
	{Name: "FechaInicio", ID: 24263232918555},
	{Name: "FechaFin", ID: 24263269848091},
	{Name: "IndividualUPC", ID: 27680028847771},
	{Name: "TipoDeProductoARetirar", ID: 27680053479451},
	{Name: "DescripcionPromocion", ID: 27680158673947},
	{Name: "SubtipoModificacionPromocion", ID: 24263573455899},
	{Name: "TipoPrecio", ID: 28266561856027},
	{Name: "TipoIva", ID: 28266618284059},
	{Name: "TiendasOperaciones", ID: 29104953234459},
	{Name: "TiendasDeFinanzas", ID: 29104936399515},
	{Name: "FinazasFechaInicio", ID: 29105001632411},
	{Name: "FinanzasFechaFinal", ID: 29104996593307},
	{Name: "Rubro", ID: 29105087425691},
	{Name: "TipoDeOperaciones", ID: 29125803719579},
	{Name: "DescripcionReporteOperaciones", ID: 29125773386267},
	{Name: "TipoDeReportes", ID: 29125851037595},
	{Name: "Frecuencia", ID: 29125852666779},
	{Name: "LinkText", ID: 30699300151579},
	{Name: "TipoDeOperacionesPOP", ID: 31737638483867},
	{Name: "TipoDeRecursosHumanos", ID: 27873297663899},
	{Name: "CargoRecursosHumanos", ID: 27873366426651},
	{Name: "NuevoCargo", ID: 27873477835675},
	{Name: "TipoDeContratacion", ID: 27873965852059},
	{Name: "DescripcionCargo", ID: 27873371053723},
	{Name: "AdjuntarHojaVida", ID: 27873991776667},
	{Name: "NombreContacto", ID: 27873510066843},
	{Name: "EmailContacto", ID: 27873525668507},
	{Name: "RolContactos", ID: 27873532677019},
	{Name: "MarketPlace", ID: 29973498641051},
	{Name: "SubtipoFulfillment", ID: 29973572787099},
	{Name: "DescriptionFulFillment", ID: 29973560253467},
	{Name: "tipodeNuevasNecesidades", ID: 31290093765019},
	{Name: "SubtipoReporte", ID: 30342863672603},
	{Name: "Estado", ID: 26853576506907},
	{Name: "TypeLastMille", ID: 29973871153051},
	{Name: "SubtipoReporteOrdenes", ID: 29974005547547},
	{Name: "ActiveOrDesactive", ID: 29973926611355},
	{Name: "TypeShippingService", ID: 29973966674715},
	{Name: "PaymentsTypeForm", ID: 25603172528155},
	{Name: "RejectionField", ID: 30276778487835},
	{Name: "EvolvingPayments", ID: 30276388737819},
	{Name: "OperationsPayments", ID: 26177147187867},
	{Name: "PaymentMethods", ID: 30278641929755},
	{Name: "PaymentsGateways", ID: 30276691658395},
	{Name: "StatusPayments", ID: 29973926611355},
	{Name: "PaymentGatewaysProblems", ID: 30277163203099},
	{Name: "TypeGatewaysProblems", ID: 30276778487835},
	{Name: "TipoPromocionCatalogo", ID: 30164823240987},
	{Name: "SubtipoPromocion", ID: 30164874701723},
	{Name: "PorcentajeDescuento", ID: 30164895752859},
	{Name: "ValorDescuento", ID: 30164897039259},
	{Name: "TipoCupon", ID: 30164968778523},
	{Name: "NombreCupones", ID: 30164993560987},
	{Name: "NumeroCupones", ID: 30165015034267},
	{Name: "NumeroRedenciones", ID: 30165025276443},
	{Name: "AplicaPara", ID: 30165046252315},
	{Name: "ListadoSkus", ID: 30180159115035},
	{Name: "ListadoSkus2", ID: 30165099342619},
	{Name: "ProductosEnPromocion", ID: 30165070455451},
	{Name: "MarketingCanales", ID: 30165268057755},
	{Name: "MarketingWhitelabel", ID: 30165503894555},
	{Name: "TipoPromocionMedioPago", ID: 30179621897243},
	{Name: "NombreCampaña", ID: 30164833312667},
	{Name: "Bancos", ID: 30179608940955},
	{Name: "NumeroDeCuotas", ID: 32791192394011},
	{Name: "BinesSobrePromocion", ID: 30179598265755},
	{Name: "TipoPromocionEnvio", ID: 30179598265755},
	{Name: "SubtipoPromocionEnvio", ID: 30179686231707},
	{Name: "SegmentacionGeografica", ID: 30179791394971},
	{Name: "RegionODepartamento", ID: 30179794749723},
	{Name: "DescuentoValorEnvio", ID: 30180536028443},
	{Name: "TipoOtrasPromociones", ID: 30179803850267},
	{Name: "IsMarketing", ID: 31115851632923},
	{Name: "TipoSolicitud", ID: 28014879582491},
	{Name: "Requerimiento", ID: 33043338829851},
	{Name: "CargarUsuarios", ID: 33043476080795},
	{Name: "SeccionImpactada", ID: 33043627769371},
	{Name: "AreaImpactada", ID: 33043589315739},
	{Name: "Prioridad", ID: 28014942320539},
	{Name: "ImpactoNegocio", ID: 33043642255131},
}
