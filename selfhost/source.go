// Package selfhost provides the self-hosting assembler: the same assembly
// contract as the asm package's reference assembler, expressed as a
// program in the dialect itself and driven to execution on the cpu
// package's emulator.
package selfhost

// source is the self-hosting assembler, written in the restricted
// mnemonic dialect it assembles. It reads resolved-form text from the
// memory region at 0x2000 and writes the assembled image starting
// wherever its relocation and origin directives point it.
//
// Zero-page layout:
//
//	$00/$01  source pointer (lo, hi)
//	$02/$03  output pointer
//	$04/$05  effective-address pointer
//	$06/$07  relocation base
//	$08-$0B  4-byte mnemonic buffer
//	$0C      current opcode
//	$0D      current shape
//	$0E/$0F  current operand low/high
//	$10/$11  catalogue scan pointer
//	$12      catalogue entries remaining, this scan
//	$13      catalogue entry count (constant, poked by the loader)
const source = `
@0200
START:
 LDY# 00
 LDA# 00
 STAZ 00
 LDA# 20
 STAZ 01
 LDA# 00
 STAZ 06
 STAZ 07
 JMP :MAIN

MAIN:
 LDAY 00
 CMP# 21
 BNE :M1
 JMP :DORELOC
M1:
 CMP# 40
 BNE :M2
 JMP :DOORG
M2:
 CMP# 23
 BNE :M3
 JMP :DOBYTE
M3:
 CMP# 22
 BNE :M4
 JMP :DOSTRING
M4:
 CMP# 20
 BNE :M5
 JMP :SKIPWS
M5:
 CMP# 0A
 BNE :M6
 JMP :SKIPWS
M6:
 JMP :READMNEM

SKIPWS:
 JSR :INCSRC
 JMP :MAIN

DORELOC:
 JSR :INCSRC
 JSR :READWORD
 LDAZ 0E
 STAZ 06
 LDAZ 0F
 STAZ 07
 JMP :MAIN

DOORG:
 JSR :INCSRC
 JSR :READWORD
 LDAZ 0E
 STAZ 04
 LDAZ 0F
 STAZ 05
 CLC
 LDAZ 04
 ADCZ 06
 STAZ 02
 LDAZ 05
 ADCZ 07
 STAZ 03
 JMP :MAIN

DOBYTE:
 JSR :INCSRC
 JSR :READBYTE
 JSR :EMIT
 JMP :MAIN

DOSTRING:
 JSR :INCSRC
STRLOOP:
 LDAY 00
 CMP# 22
 BEQ :STRDONE
 JSR :EMIT
 JSR :INCSRC
 JMP :STRLOOP
STRDONE:
 JSR :INCSRC
 JMP :MAIN

READMNEM:
 LDAY 00
 STAZ 08
 JSR :INCSRC
 LDAY 00
 STAZ 09
 JSR :INCSRC
 LDAY 00
 STAZ 0A
 JSR :INCSRC
 LDAY 00
 STAZ 0B
 JSR :INCSRC
 LDA# 00
 STAZ 10
 LDA# 10
 STAZ 11
 LDAZ 13
 STAZ 12
 JMP :SCAN

SCAN:
 LDAZ 12
 BNE :S0
 JMP :UNDEFINED
S0:
 LDY# 00
 LDAY 10
 CMPZ 08
 BEQ :S1
 JMP :SCANMISS
S1:
 LDY# 01
 LDAY 10
 CMPZ 09
 BEQ :S2
 JMP :SCANMISS
S2:
 LDY# 02
 LDAY 10
 CMPZ 0A
 BEQ :S3
 JMP :SCANMISS
S3:
 LDY# 03
 LDAY 10
 CMPZ 0B
 BEQ :S4
 JMP :SCANMISS
S4:
 LDY# 04
 LDAY 10
 STAZ 0C
 LDY# 05
 LDAY 10
 STAZ 0D
 LDY# 00
 JMP :GOTENTRY

SCANMISS:
 LDY# 00
 DECZ 12
 CLC
 LDAZ 10
 ADC# 06
 STAZ 10
 LDAZ 11
 ADC# 00
 STAZ 11
 JMP :SCAN

UNDEFINED:
 BRK

GOTENTRY:
 LDAZ 0C
 CMP# FF
 BNE :G1
 JMP :DOEND
G1:
 LDAZ 0C
 JSR :EMIT
 LDAZ 0D
 BNE :G2
 JMP :MAIN
G2:
 CMP# 01
 BNE :G3
 JMP :SHAPEBYTE
G3:
 CMP# 03
 BNE :G4
 JMP :SHAPEBYTE
G4:
 JSR :SKIPSPACE
 JSR :READBYTE
 STAZ 0F
 JSR :READBYTE
 STAZ 0E
 LDAZ 0E
 JSR :EMIT
 LDAZ 0F
 JSR :EMIT
 JMP :MAIN

SHAPEBYTE:
 JSR :SKIPSPACE
 JSR :READBYTE
 JSR :EMIT
 JMP :MAIN

DOEND:
 JMP 9000

READNIBBLE:
 LDAY 00
 JSR :INCSRC
 CMP# 41
 BCC :NIBDIGIT
 SBC# 37
 JMP :NIBDONE
NIBDIGIT:
 SEC
 SBC# 30
NIBDONE:
 RTS

READBYTE:
 JSR :READNIBBLE
 ASL
 ASL
 ASL
 ASL
 STAZ 0E
 JSR :READNIBBLE
 ORAZ 0E
 RTS

READWORD:
 JSR :READBYTE
 STAZ 0F
 JSR :READBYTE
 STAZ 0E
 RTS

SKIPSPACE:
 LDAY 00
 CMP# 20
 BEQ :SKIPSPACEADV
 CMP# 0A
 BEQ :SKIPSPACEADV
 RTS
SKIPSPACEADV:
 JSR :INCSRC
 JMP :SKIPSPACE

EMIT:
 STIY 02
 JSR :INCOUT
 INCZ 04
 BNE :E1
 INCZ 05
E1:
 RTS

INCSRC:
 INCZ 00
 BNE :I1
 INCZ 01
I1:
 RTS

INCOUT:
 INCZ 02
 BNE :I2
 INCZ 03
I2:
 RTS
END `

// Source returns the self-hosting assembler's own friendly-form source,
// used both to produce the image executed on the emulator and, resolved
// and relocated, to feed back to itself as input for the equivalence
// harness.
func Source() string {
	return source
}
