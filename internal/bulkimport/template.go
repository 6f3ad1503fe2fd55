package bulkimport

// templateContent is the canonical example of the bulk upload format. The
// column order and the header row are part of the contract: other producers
// are expected to copy this file and replace the sample rows.
const templateContent = `Item Code,Item Name,Storing UOM,Purchasing Amount,Consuming UOM,Conversion Unit
CEM001,Portland Cement,Bag,25.00,Kg,50.00
STL001,Steel Rebar 12mm,Ton,2500.00,Kg,1000.00
BLK001,Concrete Block 200mm,Piece,3.50,Piece,1.00
SND001,Fine Sand,Cubic Meter,45.00,Cubic Meter,1.00
GRV001,Coarse Aggregate,Cubic Meter,55.00,Cubic Meter,1.00
PNT001,Emulsion Paint,Liter,15.00,Liter,1.00
TIL001,Ceramic Floor Tile,Square Meter,35.00,Square Meter,1.00
WIR001,Electrical Wire 2.5mm,Meter,2.50,Meter,1.00
PIP001,PVC Pipe 110mm,Meter,12.00,Meter,1.00
INS001,Thermal Insulation,Square Meter,8.50,Square Meter,1.00
`

// Template returns the CSV template for bulk material uploads.
func Template() string {
	return templateContent
}
